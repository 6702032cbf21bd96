package sharing

import "sort"

// Resolve calcula el nivel efectivo de una identidad sobre un recurso.
//
// Reglas, en orden:
//  1. identidad vacía => none (nunca "dueño anónimo")
//  2. el dueño siempre es owner, con o sin grants
//  3. de los grants accepted cuyo sujeto coincide, gana el de mayor rango
//  4. pending y declined no otorgan nada
//
// La identidad puede ser un user id o un email: Subject.Matches cubre
// ambas llaves, así que el caller resuelve dos veces si tiene las dos.
func Resolve(ownerID string, grants []Grant, identity string) Level {
	if identity == "" {
		return LevelNone
	}
	if ownerID != "" && identity == ownerID {
		return LevelOwner
	}

	var best Permission
	for _, g := range grants {
		if g.Status != StatusAccepted {
			continue
		}
		if !g.Subject().Matches(identity) {
			continue
		}
		if g.Permission.Rank() > best.Rank() {
			best = g.Permission
		}
	}
	return levelOf(best)
}

// Dedup colapsa grants duplicados por sujeto (user_id, invited_email)
// quedándose con un representante por sujeto: accepted le gana a
// pending, después mayor rango, después el más antiguo por CreatedAt y
// por último el ID menor. El orden de salida respeta la primera
// aparición de cada sujeto en la entrada.
func Dedup(grants []Grant) []Grant {
	type slot struct {
		order int
		grant Grant
	}

	byKey := make(map[string]slot, len(grants))
	for i, g := range grants {
		k := g.Subject().Key()
		cur, ok := byKey[k]
		if !ok {
			byKey[k] = slot{order: i, grant: g}
			continue
		}
		byKey[k] = slot{order: cur.order, grant: betterRepresentative(cur.grant, g)}
	}

	out := make([]slot, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })

	result := make([]Grant, 0, len(out))
	for _, s := range out {
		result = append(result, s.grant)
	}
	return result
}

func betterRepresentative(a, b Grant) Grant {
	aAccepted := a.Status == StatusAccepted
	bAccepted := b.Status == StatusAccepted
	if aAccepted != bAccepted {
		if aAccepted {
			return a
		}
		return b
	}

	if ar, br := a.Permission.Rank(), b.Permission.Rank(); ar != br {
		if ar > br {
			return a
		}
		return b
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.Before(b.CreatedAt) {
			return a
		}
		return b
	}

	if a.ID <= b.ID {
		return a
	}
	return b
}
