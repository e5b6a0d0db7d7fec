package fitness

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/myrjola/fitplanner/internal/errors"
)

const (
	exercisesFile = "exercises.json"
	foodsFile     = "foods.json"
)

// FileCatalogSource reads the catalogs from exercises.json and foods.json in a directory.
// Both files hold a JSON array of records.
type FileCatalogSource struct {
	dir string
}

// NewFileCatalogSource reads exercises.json and foods.json from dir.
func NewFileCatalogSource(dir string) *FileCatalogSource {
	return &FileCatalogSource{dir: dir}
}

// LoadExercises decodes the exercise catalog file.
func (s *FileCatalogSource) LoadExercises(ctx context.Context) ([]ExerciseRecord, error) {
	var exercises []ExerciseRecord
	if err := s.decode(ctx, exercisesFile, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// LoadFoods decodes the food catalog file.
func (s *FileCatalogSource) LoadFoods(ctx context.Context) ([]FoodRecord, error) {
	var foods []FoodRecord
	if err := s.decode(ctx, foodsFile, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *FileCatalogSource) decode(ctx context.Context, name string, v any) error {
	path := filepath.Join(s.dir, name)
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "read catalog file", slog.String("path", path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read catalog file", slog.String("path", path))
	}
	if err = json.UnmarshalContext(ctx, data, v); err != nil {
		return errors.Wrap(err, "decode catalog file", slog.String("path", path))
	}
	return nil
}
