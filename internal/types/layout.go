package types

const (
	DefaultBundlePattern = "*.jar"
	DefaultDropinsPrefix = "../dropins/"
	DefaultStartLevel    = 4
	DefaultProfile       = "default"
	LedgerFileName       = "bundles.info"
)

// Layout locates the dropins directory and the ledger file, and carries
// the conventions used for records created from dropins bundles.
type Layout struct {
	DropinsDir    string
	LedgerPath    string
	BundlePattern string
	DropinsPrefix string
	StartLevel    int
}

// ReconcileReport is the persisted summary of one reconcile run.
type ReconcileReport struct {
	LedgerPath  string           `yaml:"ledger_path"`
	DropinsDir  string           `yaml:"dropins_dir"`
	LedgerFound bool             `yaml:"ledger_found"`
	DryRun      bool             `yaml:"dry_run"`
	Written     bool             `yaml:"written"`
	Deployed    []ReportEntry    `yaml:"deployed,omitempty"`
	Refused     []ReportEntry    `yaml:"refused,omitempty"`
	Pruned      []ReportEntry    `yaml:"pruned,omitempty"`
	Skipped     []ScanIssueEntry `yaml:"skipped,omitempty"`
}

type ReportEntry struct {
	SymbolicName string `yaml:"symbolic_name"`
	Version      string `yaml:"version"`
	Path         string `yaml:"path"`
	Fragment     bool   `yaml:"fragment"`
	ExistingPath string `yaml:"existing_path,omitempty"`
	Reason       string `yaml:"reason,omitempty"`
}

type ScanIssueEntry struct {
	File   string `yaml:"file"`
	Reason string `yaml:"reason"`
}

// LedgerView is the yaml shape used by inspect.
type LedgerView struct {
	Path    string            `yaml:"path"`
	Bundles []LedgerViewGroup `yaml:"bundles"`
}

type LedgerViewGroup struct {
	SymbolicName string            `yaml:"symbolic_name"`
	Records      []LedgerViewEntry `yaml:"records"`
}

type LedgerViewEntry struct {
	Version    string `yaml:"version"`
	Path       string `yaml:"path"`
	StartLevel int    `yaml:"start_level"`
	Fragment   bool   `yaml:"fragment"`
	Origin     string `yaml:"origin"`
}
