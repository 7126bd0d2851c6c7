package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

func TestSortCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should normalize, order and deduplicate the versions", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewSortCommand(entities.NewVersionComparator())
		versions := []string{"3.9", "3.15-FINAL", "[3.10", "3.9", "other", "3.10-beta1"}

		// when
		result := cmd.Execute(versions)

		// then
		assert.Equal(t, []string{"other", "3.9", "3.10-beta1", "3.10", "3.15"}, result.Ordered)
		assert.Equal(t, "3.15", result.Highest)
		assert.Equal(t, "3.15-FINAL", versions[1])
	})

	t.Run("should return an empty result for no versions", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewSortCommand(entities.NewVersionComparator())

		// when
		result := cmd.Execute(nil)

		// then
		assert.Empty(t, result.Ordered)
		assert.Empty(t, result.Highest)
	})
}
