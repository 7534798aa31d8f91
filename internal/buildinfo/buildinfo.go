package buildinfo

const Graffiti = "   ___  _   ____ \n  / _ \\| | / / / \n / __ || |/ / /__\n/_/ |_||___/____/\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "avlbench"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
