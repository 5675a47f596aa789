package flow

import (
	"context"

	"github.com/hearthhq/hearth/pkg/address"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/profile"
)

// Hook post-processes a validated answer for one question category before
// persistence. It may canonicalize the answer, attach provenance metadata,
// and trigger side effects (profile updates). A hook error is never fatal:
// the machine logs it and persists the raw answer unassisted.
type Hook func(ctx context.Context, q memory.Question, answer string) (canonical string, metadata map[string]string, err error)

// defaultHooks builds the category dispatch table. One flat map, no
// per-question subtyping: the category tag is the routing key.
func defaultHooks(profiles *profile.Store, addr address.Adapter) map[memory.Category]Hook {
	hooks := make(map[memory.Category]Hook)

	if profiles != nil {
		hooks[memory.CategoryPersonal] = func(_ context.Context, q memory.Question, answer string) (string, map[string]string, error) {
			// Only the canonical name question feeds the cached
			// display name; other personal questions pass through.
			if q.ID == memory.QuestionUserName {
				if err := profiles.SetDisplayName(answer); err != nil {
					return answer, nil, err
				}
			}
			return answer, nil, nil
		}

		hooks[memory.CategoryHouse] = func(_ context.Context, _ memory.Question, answer string) (string, map[string]string, error) {
			if err := profiles.SetHouseName(answer); err != nil {
				return answer, nil, err
			}
			return answer, nil, nil
		}
	}

	if addr != nil {
		parseAddress := func(_ context.Context, _ memory.Question, answer string) (string, map[string]string, error) {
			parsed, err := addr.Parse(answer)
			if err != nil {
				return answer, nil, err
			}
			meta := map[string]string{"address_raw": parsed.Raw}
			if parsed.PostalCode != "" {
				meta["postal_code"] = parsed.PostalCode
			}
			return parsed.String(), meta, nil
		}

		hooks[memory.CategoryLocation] = parseAddress
		// A substantive reply to the confirmation question is a
		// corrected address and goes through the same canonicalization.
		hooks[memory.CategoryConfirmation] = parseAddress
	}

	return hooks
}
