package config

// Git hook stages a hook can be attached to.
const (
	StagePreCommit        = "pre-commit"
	StagePreMergeCommit   = "pre-merge-commit"
	StagePrePush          = "pre-push"
	StagePrepareCommitMsg = "prepare-commit-msg"
	StageCommitMsg        = "commit-msg"
	StagePostCheckout     = "post-checkout"
	StagePostCommit       = "post-commit"
	StagePostMerge        = "post-merge"
	StagePostRewrite      = "post-rewrite"
	StageManual           = "manual"
)

var validStages = map[string]bool{
	StagePreCommit:        true,
	StagePreMergeCommit:   true,
	StagePrePush:          true,
	StagePrepareCommitMsg: true,
	StageCommitMsg:        true,
	StagePostCheckout:     true,
	StagePostCommit:       true,
	StagePostMerge:        true,
	StagePostRewrite:      true,
	StageManual:           true,
}

// InstallableStages lists the stages install writes scripts for.
var InstallableStages = []string{
	StagePreCommit,
	StagePreMergeCommit,
	StagePrePush,
	StagePrepareCommitMsg,
	StageCommitMsg,
	StagePostCheckout,
	StagePostCommit,
	StagePostMerge,
	StagePostRewrite,
}

// ValidStage reports whether name is a known hook stage.
func ValidStage(name string) bool { return validStages[name] }

// RunsAtStage reports whether the hook participates in the given stage,
// considering the document-level default_stages fallback.
func (h HookConfig) RunsAtStage(stage string, defaultStages []string) bool {
	stages := h.Stages
	if len(stages) == 0 {
		stages = defaultStages
	}
	if len(stages) == 0 {
		return stage == StagePreCommit
	}
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}
