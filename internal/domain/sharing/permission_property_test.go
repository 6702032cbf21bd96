package sharing

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genPermission genera uno de los tres permisos rankeados.
func genPermission() gopter.Gen {
	return gen.OneConstOf(PermissionRead, PermissionWrite, PermissionFull)
}

// genStatus genera pending o accepted (declined no se produce nunca).
func genStatus() gopter.Gen {
	return gen.OneConstOf(StatusPending, StatusAccepted)
}

// genUserID genera identidades cortas tipo "u3".
func genUserID() gopter.Gen {
	return gen.IntRange(0, 9).Map(func(n int) string {
		return "u" + string(rune('0'+n))
	})
}

// genGrant genera un grant para un recurso fijo.
func genGrant() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		genUserID(),
		genPermission(),
		genStatus(),
	).Map(func(vs []interface{}) Grant {
		return Grant{
			ID:           vs[0].(string),
			UserID:       vs[1].(string),
			InvitedEmail: vs[1].(string) + "@example.com",
			Permission:   vs[2].(Permission),
			Status:       vs[3].(Status),
		}
	})
}

func genGrants() gopter.Gen {
	return gen.SliceOf(genGrant())
}

func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("owner always resolves to owner, whatever the grants", prop.ForAll(
		func(grants []Grant, owner string) bool {
			return Resolve(owner, grants, owner) == LevelOwner
		},
		genGrants(),
		genUserID(),
	))

	properties.Property("resolved level equals max rank over matching accepted grants", prop.ForAll(
		func(grants []Grant, identity string) bool {
			lvl := Resolve("the-owner", grants, identity)

			best := 0
			for _, g := range grants {
				if g.Status != StatusAccepted || !g.Subject().Matches(identity) {
					continue
				}
				if r := g.Permission.Rank(); r > best {
					best = r
				}
			}

			switch best {
			case 0:
				return lvl == LevelNone
			case 1:
				return lvl == LevelRead
			case 2:
				return lvl == LevelWrite
			default:
				return lvl == LevelFull
			}
		},
		genGrants(),
		genUserID(),
	))

	properties.Property("pending grants never grant access", prop.ForAll(
		func(grants []Grant, identity string) bool {
			pendingOnly := make([]Grant, 0, len(grants))
			for _, g := range grants {
				g.Status = StatusPending
				pendingOnly = append(pendingOnly, g)
			}
			return Resolve("the-owner", pendingOnly, identity) == LevelNone
		},
		genGrants(),
		genUserID(),
	))

	properties.Property("resolving by user id and by invited email agree", prop.ForAll(
		func(grants []Grant, identity string) bool {
			// por construcción el email es userID+"@example.com"
			byID := Resolve("the-owner", grants, identity)
			byEmail := Resolve("the-owner", grants, identity+"@example.com")
			return byID == byEmail
		},
		genGrants(),
		genUserID(),
	))

	properties.TestingRun(t)
}

func TestDedupProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("exactly one representative per subject key", prop.ForAll(
		func(grants []Grant) bool {
			out := Dedup(grants)
			seen := map[string]bool{}
			for _, g := range out {
				key := g.Subject().Key()
				if seen[key] {
					return false
				}
				seen[key] = true
			}

			want := map[string]bool{}
			for _, g := range grants {
				want[g.Subject().Key()] = true
			}
			return len(out) == len(want)
		},
		genGrants(),
	))

	properties.Property("representative is never outranked by an accepted peer", prop.ForAll(
		func(grants []Grant) bool {
			out := Dedup(grants)
			for _, rep := range out {
				for _, g := range grants {
					if g.Subject().Key() != rep.Subject().Key() {
						continue
					}
					// accepted le gana a pending siempre
					if g.Status == StatusAccepted && rep.Status == StatusPending {
						return false
					}
					// a igual status, el rep no puede tener menor rango
					if g.Status == rep.Status && g.Permission.Rank() > rep.Permission.Rank() {
						return false
					}
				}
			}
			return true
		},
		genGrants(),
	))

	properties.Property("dedup is idempotent", prop.ForAll(
		func(grants []Grant) bool {
			once := Dedup(grants)
			twice := Dedup(once)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i].ID != twice[i].ID {
					return false
				}
			}
			return true
		},
		genGrants(),
	))

	properties.TestingRun(t)
}
