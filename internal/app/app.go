package app

const (
	Name    = "college-costs"
	Author  = "Michael Scott Cuthbert and cuthbertLab"
	License = "MIT"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "0.2.0"

type App struct {
	Name    string
	Version string
	Author  string
	License string
}

func New() *App {
	return &App{
		Name:    Name,
		Version: Version,
		Author:  Author,
		License: License,
	}
}

func (a *App) GetFullVersion() string {
	return a.Name + " version " + a.Version
}

// Title is the label of the terminal UI title bar.
func (a *App) Title() string {
	if a.Version == "" {
		return a.Name
	}

	return a.Name + " v" + a.Version
}
