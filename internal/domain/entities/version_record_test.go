package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

const (
	acmeRoot   = "https://github.com/acme/widgets/blob/main/pom.xml"
	acmeModule = "https://github.com/acme/widgets/blob/main/module/pom.xml"
	otherRepo  = "https://github.com/other/reports/blob/main/build.gradle"
)

func TestVersionRecord(t *testing.T) {
	t.Parallel()

	t.Run("should ignore duplicate entries", func(t *testing.T) {
		t.Parallel()

		// given
		record := entities.NewVersionRecord("2024-01-02")

		// when
		record.Add("3.15", acmeRoot)
		record.Add("3.15", acmeRoot)
		record.Add("3.9", otherRepo)

		// then
		assert.Equal(t, 2, record.Len())
		assert.Equal(t, []string{"3.15", "3.9"}, record.Versions())
		assert.Equal(t, []string{acmeRoot}, record.Locations("3.15"))
	})

	t.Run("should keep only the highest version per repository", func(t *testing.T) {
		t.Parallel()

		// given
		comparator := entities.NewVersionComparator()
		record := entities.NewVersionRecord("2024-01-02")
		record.Add("3.9", acmeRoot)
		record.Add("3.15", acmeModule)
		record.Add("3.9", otherRepo)

		// when
		highest := record.HighestPerRepository(comparator)

		// then
		assert.Equal(t, "2024-01-02", highest.Date)
		assert.Equal(t, []string{acmeModule}, highest.Locations("3.15"))
		assert.Equal(t, []string{otherRepo}, highest.Locations("3.9"))
		assert.Equal(t, 2, highest.Len())
	})

	t.Run("should map versions to repositories", func(t *testing.T) {
		t.Parallel()

		// given
		comparator := entities.NewVersionComparator()
		record := entities.NewVersionRecord("2024-01-02")
		record.Add("3.15", acmeRoot)
		record.Add("3.15", acmeModule)
		record.Add("3.9", otherRepo)
		record.Add("noVersion", "local-file.gradle")

		// when
		repoVersions := record.RepositoryVersions(comparator)

		// then
		assert.Equal(t, map[string][]string{
			"3.15":      {"acme/widgets"},
			"3.9":       {"other/reports"},
			"noVersion": {"local-file.gradle"},
		}, repoVersions)
	})

	t.Run("should encode as a date and a version map", func(t *testing.T) {
		t.Parallel()

		// given
		record := entities.NewVersionRecord("2024-01-02")
		record.Add("3.15", acmeModule)
		record.Add("3.15", acmeRoot)

		// when
		data, err := json.Marshal(record)

		// then
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"date":"2024-01-02","versions":{"3.15":["`+acmeModule+`","`+acmeRoot+`"]}}`,
			string(data),
		)

		decoded := &entities.VersionRecord{}
		require.NoError(t, json.Unmarshal(data, decoded))
		assert.Equal(t, record.Locations("3.15"), decoded.Locations("3.15"))
	})
}
