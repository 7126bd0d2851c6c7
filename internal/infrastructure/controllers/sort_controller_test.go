package controllers_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/infrastructure/controllers"
)

func TestSortControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should list the versions in order and mark the highest", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewSortController(commands.NewSortCommand(entities.NewVersionComparator()))
		var out bytes.Buffer
		cmd := &cobra.Command{Use: "sort"}
		cmd.SetOut(&out)

		// when
		controller.Execute(cmd, []string{"3.15", "3.9", "3.15-beta2"})

		// then
		assert.Equal(t, "  3.9\n  3.15-beta2\n* 3.15\n", out.String())
	})
}
