package memory

import "fmt"

// migrationStep moves one legacy question onto its canonical replacement.
// Steps match by prompt text, not id: old installations may carry
// locally-generated ids for what is now a fixed catalog question.
type migrationStep struct {
	// legacyText is the exact prompt of the question being retired.
	legacyText string

	// canonicalID is the fixed default-catalog question that inherits the
	// legacy question's answer.
	canonicalID QuestionID
}

// migrations lists the steps applied when loading a snapshot at the given
// version to bring it to version+1.
var migrations = map[int][]migrationStep{
	1: {
		{legacyText: "What is your name?", canonicalID: QuestionUserName},
		{legacyText: "Where do you live?", canonicalID: QuestionHomeAddress},
	},
}

// Migrate brings a snapshot to CurrentSchemaVersion, preserving user answers.
// It operates on a clone and returns it; on error the input snapshot is
// untouched and must remain the active one.
func Migrate(snap *Snapshot) (*Snapshot, error) {
	if snap.SchemaVersion >= CurrentSchemaVersion {
		return snap, nil
	}

	out := snap.Clone()
	for out.SchemaVersion < CurrentSchemaVersion {
		steps, ok := migrations[out.SchemaVersion]
		if !ok {
			return nil, MigrationError{
				Reason: fmt.Sprintf("no migration path from schema version %d", out.SchemaVersion),
			}
		}

		for _, step := range steps {
			if err := applyStep(out, step); err != nil {
				return nil, err
			}
		}
		out.SchemaVersion++
	}

	return out, nil
}

// applyStep retires the legacy question and carries its answer onto the
// canonical question. The canonical question is created from the default
// catalog first if the snapshot predates it, so an answer is never dropped
// for want of a destination.
func applyStep(snap *Snapshot, step migrationStep) error {
	legacy, ok := snap.questionByText(step.legacyText)
	if !ok {
		// Nothing to migrate on this installation.
		return nil
	}
	if legacy.ID == step.canonicalID {
		// Already canonical; only the version needs bumping.
		return nil
	}

	if _, ok := snap.Question(step.canonicalID); !ok {
		canonical, ok := defaultQuestion(step.canonicalID)
		if !ok {
			return MigrationError{
				Reason: fmt.Sprintf("canonical question %q is not in the default catalog", step.canonicalID),
			}
		}
		snap.Questions = append(snap.Questions, canonical)
	}

	if note := snap.Notes[legacy.ID]; note != nil {
		moved := note.Clone()
		moved.QuestionID = step.canonicalID
		moved.setMeta(MetaSource, SourceMigration)
		snap.Notes[step.canonicalID] = moved
	}

	snap.removeQuestion(legacy.ID)
	return nil
}
