package store

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// The game status constants must stay inside the set the games table's CHECK
// constraint accepts, or every write using them fails at the database.
func TestGameStatusConstantsMatchSchema(t *testing.T) {
	schema, err := os.ReadFile("../../infra/migrations/004_create_games.sql")
	if err != nil {
		t.Fatalf("reading games migration: %v", err)
	}

	for _, status := range []string{GameScheduled, GamePlayed, GameCancelled} {
		quoted := fmt.Sprintf("'%s'", status)
		if !strings.Contains(string(schema), quoted) {
			t.Errorf("status %q not in the games table CHECK constraint", status)
		}
	}
}
