package stress

type Config struct {
	// Insert/delete rounds, each on a fresh tree
	Rounds int `envconfig:"AVL_STRESS_ROUNDS" default:"50"`
	// Validate the whole tree after every n-th operation, 0 only at round boundaries
	ValidateEvery int `envconfig:"AVL_STRESS_VALIDATE_EVERY" default:"1"`
	// Rounds checked at once
	Parallelism int `envconfig:"AVL_STRESS_PARALLELISM" default:"4"`
}
