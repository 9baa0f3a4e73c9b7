// Package registry implements the create/read/update/delete operations over
// evacuation sites, evacuee families and missing-person reports.
package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
	"github.com/mr1hm/go-evacuation-tracker/internal/repository"
)

// AssetStore persists photo payloads and hands back references.
type AssetStore interface {
	Store(ctx context.Context, photo *models.Photo) (string, error)
	Delete(ctx context.Context, ref string) error
}

type Registry struct {
	store    repository.Store
	assets   AssetStore
	validate *validator.Validate
}

func New(store repository.Store, assets AssetStore) *Registry {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Registry{
		store:    store,
		assets:   assets,
		validate: v,
	}
}

func (r *Registry) validateStruct(v any) error {
	err := r.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(msgs, "; "))
}

// storeErr maps a repository error onto the taxonomy. Not-found errors already
// carry models.ErrNotFound; everything else is a storage failure.
func storeErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrStorage, err)
}
