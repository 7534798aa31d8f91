package report

type Config struct {
	// Output format: text, yaml or json
	Format Format `envconfig:"AVL_REPORT_FORMAT" default:"text"`
}
