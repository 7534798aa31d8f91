package dataset

type Config struct {
	// Dataset shape: SEQUENTIAL, RANDOM or FIXED
	Kind Kind `envconfig:"AVL_DATASET_KIND" default:"RANDOM"`
	// Number of keys per dataset, ignored for FIXED
	Size int `envconfig:"AVL_DATASET_SIZE" default:"1000"`
	// Random keys are drawn from [0, KeyBound)
	KeyBound int `envconfig:"AVL_DATASET_KEY_BOUND" default:"10000"`
	// Seed for random datasets, 0 picks one from the clock
	Seed uint32 `envconfig:"AVL_DATASET_SEED" default:"0"`
}
