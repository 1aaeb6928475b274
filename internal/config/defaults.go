package config

const (
	defaultProjectRoot        = "."
	defaultNotebooksDir       = "notebooks"
	defaultReportsDir         = "reports"
	defaultConverterBinary    = "jupyter"
	defaultConverterSubcmd    = "nbconvert"
	defaultConverterFormat    = "html"
	defaultNotebookExtension  = ".ipynb"
	defaultCheckpointDir      = ".ipynb_checkpoints"
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"
	defaultConfigPath         = "~/.config/nbexport/config.toml"
	projectConfigName         = "nbexport.toml"
	envProjectRoot            = "NBEXPORT_PROJECT_ROOT"
	envConverterBinary        = "NBEXPORT_CONVERTER"
	defaultConverterTimeout   = 0
	defaultSortDiscoveryOrder = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			NotebooksDir: defaultNotebooksDir,
			ReportsDir:   defaultReportsDir,
		},
		Converter: Converter{
			Subcommand:     defaultConverterSubcmd,
			Format:         defaultConverterFormat,
			TimeoutSeconds: defaultConverterTimeout,
		},
		Discovery: Discovery{
			Extension:   defaultNotebookExtension,
			ExcludeDirs: []string{defaultCheckpointDir},
			Sort:        defaultSortDiscoveryOrder,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
