package param

type GlobalOpts struct {
	ProjectDir string `arg:"-p,--project-dir,env:DEPLOYER_PROJECT_DIR" help:"project directory" default:"."`
	Debug      bool   `arg:"-d,--debug,env:DEPLOYER_DEBUG" help:"print debug logs"`
}

type Init struct{}

type Deploy struct {
	Path   string `arg:"positional" help:"function configuration file" default:"function.json"`
	Config string `arg:"-c,--config" help:"function configuration file, overrides the positional path"`
}

// Definition is the configuration path the user asked for.
func (d Deploy) Definition() string {
	if d.Config != "" {
		return d.Config
	}
	return d.Path
}

type Config struct{}
