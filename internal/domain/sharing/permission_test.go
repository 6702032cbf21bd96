package sharing

import (
	"testing"
	"time"
)

func TestResolve_OwnerDominatesGrants(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionRead, Status: StatusAccepted},
	}

	if lvl := Resolve("u1", grants, "u1"); lvl != LevelOwner {
		t.Fatalf("expected owner, got %s", lvl)
	}
	// owner aunque no tenga ningún grant
	if lvl := Resolve("u1", nil, "u1"); lvl != LevelOwner {
		t.Fatalf("expected owner without grants, got %s", lvl)
	}
}

func TestResolve_EmptyIdentityIsNone(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionFull, Status: StatusAccepted},
	}
	if lvl := Resolve("owner-1", grants, ""); lvl != LevelNone {
		t.Fatalf("expected none for empty identity, got %s", lvl)
	}
}

func TestResolve_NoMatchIsNone(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", InvitedEmail: "a@example.com", Permission: PermissionFull, Status: StatusAccepted},
	}
	if lvl := Resolve("owner-1", grants, "u2"); lvl != LevelNone {
		t.Fatalf("expected none, got %s", lvl)
	}
}

func TestResolve_HighestRankWinsAcrossGrants(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionWrite, Status: StatusAccepted},
		{ID: "g2", UserID: "u1", Permission: PermissionFull, Status: StatusAccepted},
	}
	if lvl := Resolve("owner-1", grants, "u1"); lvl != LevelFull {
		t.Fatalf("expected full (rank merge), got %s", lvl)
	}
}

func TestResolve_PendingNeverCounts(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionFull, Status: StatusPending},
	}
	if lvl := Resolve("owner-1", grants, "u1"); lvl != LevelNone {
		t.Fatalf("expected none for pending-only, got %s", lvl)
	}
}

func TestResolve_PendingStaleLosesToAcceptedLowerRank(t *testing.T) {
	// Re-invite pending/full viejo + accepted/read vigente.
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionFull, Status: StatusPending},
		{ID: "g2", UserID: "u1", Permission: PermissionRead, Status: StatusAccepted},
	}
	if lvl := Resolve("owner-1", grants, "u1"); lvl != LevelRead {
		t.Fatalf("expected read (only accepted counts), got %s", lvl)
	}
}

func TestResolve_MatchesByInvitedEmail(t *testing.T) {
	// El grant aceptado conserva invited_email, y consultar
	// por ese email como pseudo-identidad sigue resolviendo (dual-key).
	grants := []Grant{
		{ID: "g1", UserID: "u2", InvitedEmail: "carol@example.com", Permission: PermissionFull, Status: StatusAccepted},
	}
	if lvl := Resolve("u0", grants, "u2"); lvl != LevelFull {
		t.Fatalf("expected full by user id, got %s", lvl)
	}
	if lvl := Resolve("u0", grants, "carol@example.com"); lvl != LevelFull {
		t.Fatalf("expected full by invited email, got %s", lvl)
	}
}

func TestResolve_UnknownPermissionIsNone(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: Permission("admin"), Status: StatusAccepted},
	}
	if lvl := Resolve("owner-1", grants, "u1"); lvl != LevelNone {
		t.Fatalf("expected none for unranked permission, got %s", lvl)
	}
}

func TestDedup_AcceptedBeatsPendingRegardlessOfRank(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	grants := []Grant{
		{ID: "g1", UserID: "u1", InvitedEmail: "bob@example.com", Permission: PermissionRead, Status: StatusPending, CreatedAt: now},
		{ID: "g2", UserID: "u1", InvitedEmail: "bob@example.com", Permission: PermissionWrite, Status: StatusAccepted, CreatedAt: now.Add(time.Minute)},
	}

	out := Dedup(grants)
	if len(out) != 1 {
		t.Fatalf("expected 1 representative, got %d", len(out))
	}
	if out[0].ID != "g2" {
		t.Fatalf("expected accepted/write row g2, got %s", out[0].ID)
	}

	// mismo resultado con pending/full vs accepted/read
	grants = []Grant{
		{ID: "g3", UserID: "u1", InvitedEmail: "bob@example.com", Permission: PermissionFull, Status: StatusPending, CreatedAt: now},
		{ID: "g4", UserID: "u1", InvitedEmail: "bob@example.com", Permission: PermissionRead, Status: StatusAccepted, CreatedAt: now},
	}
	out = Dedup(grants)
	if len(out) != 1 || out[0].ID != "g4" {
		t.Fatalf("expected g4 (accepted beats pending), got %#v", out)
	}
}

func TestDedup_HigherRankWinsWithinSameStatus(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionRead, Status: StatusAccepted},
		{ID: "g2", UserID: "u1", Permission: PermissionFull, Status: StatusAccepted},
	}
	out := Dedup(grants)
	if len(out) != 1 || out[0].ID != "g2" {
		t.Fatalf("expected g2 (higher rank), got %#v", out)
	}
}

func TestDedup_SeparatesDistinctSubjects(t *testing.T) {
	// (user_id, invited_email) distintos => filas distintas, sin colapsar.
	grants := []Grant{
		{ID: "g1", UserID: "u1", InvitedEmail: "a@example.com", Permission: PermissionRead, Status: StatusAccepted},
		{ID: "g2", UserID: "", InvitedEmail: "a@example.com", Permission: PermissionRead, Status: StatusPending},
		{ID: "g3", UserID: "u2", InvitedEmail: "b@example.com", Permission: PermissionWrite, Status: StatusAccepted},
	}
	out := Dedup(grants)
	if len(out) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(out))
	}
}

func TestDedup_DeterministicTieBreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	grants := []Grant{
		{ID: "g2", UserID: "u1", Permission: PermissionWrite, Status: StatusAccepted, CreatedAt: now},
		{ID: "g1", UserID: "u1", Permission: PermissionWrite, Status: StatusAccepted, CreatedAt: now},
	}
	// a igual status/rango/fecha gana el ID menor, en cualquier orden de entrada
	out := Dedup(grants)
	if len(out) != 1 || out[0].ID != "g1" {
		t.Fatalf("expected g1, got %#v", out)
	}

	grants[0], grants[1] = grants[1], grants[0]
	out = Dedup(grants)
	if len(out) != 1 || out[0].ID != "g1" {
		t.Fatalf("expected g1 after reorder, got %#v", out)
	}
}

func TestDedup_PreservesFirstSeenOrder(t *testing.T) {
	grants := []Grant{
		{ID: "g1", UserID: "u1", Permission: PermissionRead, Status: StatusAccepted},
		{ID: "g2", UserID: "u2", Permission: PermissionRead, Status: StatusAccepted},
		{ID: "g3", UserID: "u1", Permission: PermissionFull, Status: StatusAccepted},
	}
	out := Dedup(grants)
	if len(out) != 2 {
		t.Fatalf("expected 2, got %d", len(out))
	}
	if out[0].UserID != "u1" || out[1].UserID != "u2" {
		t.Fatalf("expected first-seen order u1,u2, got %#v", out)
	}
	if out[0].ID != "g3" {
		t.Fatalf("expected u1 represented by g3, got %s", out[0].ID)
	}
}

func TestLevel_Gates(t *testing.T) {
	cases := []struct {
		lvl    Level
		read   bool
		write  bool
		manage bool
	}{
		{LevelOwner, true, true, true},
		{LevelFull, true, true, true},
		{LevelWrite, true, true, false},
		{LevelRead, true, false, false},
		{LevelNone, false, false, false},
	}
	for _, c := range cases {
		if c.lvl.CanRead() != c.read || c.lvl.CanWrite() != c.write || c.lvl.CanManage() != c.manage {
			t.Fatalf("gates wrong for %s", c.lvl)
		}
	}
}
