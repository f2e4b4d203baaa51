package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentshive/training-site/internal/repository"
	"github.com/talentshive/training-site/internal/service"
	"github.com/talentshive/training-site/internal/validation"
)

func TestCatalogPrinter(t *testing.T) {
	color.NoColor = true

	repos := repository.NewMemoryRepositories()
	require.NoError(t, repository.Seed(context.Background(), repos, time.Now()))

	var out bytes.Buffer
	printer := NewCatalogPrinter(
		service.NewCatalogService(repos, validation.New(), zerolog.Nop()),
		service.NewStatsService(repos),
		&out,
	)
	require.NoError(t, printer.Print(context.Background()))

	text := out.String()
	for _, want := range []string{"Courses", "cyber-001", "webdev-001", "network-001", "Instructors", "instructor-003", "Students enrolled", "9500", "95%"} {
		assert.Contains(t, text, want)
	}
}
