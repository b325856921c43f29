package types

type BundleOrigin string

const (
	BundleOriginDropins BundleOrigin = "dropins"
	BundleOriginOther   BundleOrigin = "other"
)

type MergeAction string

const (
	MergeActionDeployed MergeAction = "deployed"
	MergeActionPresent  MergeAction = "present"
	MergeActionRefused  MergeAction = "refused"
)

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)
