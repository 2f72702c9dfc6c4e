package snapshot_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specvital/testdiff/pkg/parser/jsast"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/snapshot"
	"github.com/specvital/testdiff/pkg/source"
)

// goldenCase is one fixture tree with its expected snapshot.
type goldenCase struct {
	Name      string   `yaml:"name"`
	Framework string   `yaml:"framework"`
	Dir       string   `yaml:"dir"`
	Pattern   string   `yaml:"pattern"`
	Files     []string `yaml:"files"`
	Tests     []string `yaml:"tests"`
	Skipped   []string `yaml:"skipped"`
}

type goldenCases struct {
	Cases []goldenCase `yaml:"cases"`
}

func loadGoldenCases(path string) (*goldenCases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases from %s: %w", path, err)
	}

	var cases goldenCases
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("unmarshal cases: %w", err)
	}

	if len(cases.Cases) == 0 {
		return nil, errors.New("no cases defined")
	}
	for i, c := range cases.Cases {
		if c.Name == "" || c.Dir == "" || c.Pattern == "" {
			return nil, fmt.Errorf("case %d: name, dir and pattern are required", i)
		}
	}
	return &cases, nil
}

func TestGolden(t *testing.T) {
	t.Parallel()

	cases, err := loadGoldenCases(filepath.Join("testdata", "cases.yaml"))
	require.NoError(t, err)

	for _, tc := range cases.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			root := filepath.Join("testdata", tc.Dir)
			src, err := source.NewLocalSource(root)
			require.NoError(t, err)
			defer src.Close()

			enum, err := source.NewEnumerator(src.Root())
			require.NoError(t, err)
			files, err := enum.Files(tc.Pattern)
			require.NoError(t, err)

			agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve(tc.Framework))
			result, err := agg.Build(context.Background(), files)
			require.NoError(t, err)

			assert.Equal(t, tc.Files, result.Snapshot.Files)
			assert.Equal(t, tc.Tests, result.Snapshot.Tests)
			assert.Equal(t, tc.Skipped, result.Snapshot.Skipped)
		})
	}
}
