package profile

type Config struct {
	// Number of datasets to time
	Trials int `envconfig:"AVL_PROFILE_TRIALS" default:"100"`
	// Trials timed at once, each on its own tree
	Parallelism int `envconfig:"AVL_PROFILE_PARALLELISM" default:"1"`
	// Time a lookup of every key between the insert and delete passes
	MeasureFind bool `envconfig:"AVL_PROFILE_MEASURE_FIND" default:"true"`
}
