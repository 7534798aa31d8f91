package footprint

type Config struct {
	// Sequential keys inserted before measuring
	Keys int `envconfig:"AVL_FOOTPRINT_KEYS" default:"100000"`
}
