package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// defaultServices is the salon's standard menu, inserted once at
// provisioning time. Prices are EUR cents.
var defaultServices = []struct {
	ID          string
	Name        string
	Description string
	Duration    int
	PriceCents  int64
}{
	{"basic-manicure", "Manicure Básica", "Manicure clássica com verniz", 45, 2300},
	{"gel-manicure", "Manicure em Gel", "Manicure com verniz gel de longa duração", 60, 3200},
	{"basic-pedicure", "Pedicure Básica", "Pedicure clássica com verniz", 60, 2800},
	{"gel-pedicure", "Pedicure em Gel", "Pedicure com verniz gel de longa duração", 75, 3700},
	{"nail-art", "Nail Art", "Design personalizado de nail art", 90, 4600},
	{"acrylic-full-set", "Unhas de Acrílico - Conjunto Completo", "Conjunto completo de unhas de acrílico", 120, 5500},
	{"acrylic-fill", "Preenchimento de Acrílico", "Preenchimento de unhas de acrílico", 90, 3700},
}

// SeedDefaults inserts the default service catalog if the collection is
// empty. Safe to call on every startup.
func (r *MongoCatalogRepo) SeedDefaults(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctxWithTimeout, bson.M{})
	if err != nil {
		return fmt.Errorf("error counting services: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(defaultServices))
	for _, s := range defaultServices {
		docs = append(docs, bson.M{
			"id":               s.ID,
			"name":             s.Name,
			"description":      s.Description,
			"duration_minutes": s.Duration,
			"price_cents":      s.PriceCents,
			"active":           true,
		})
	}
	if _, err := r.coll.InsertMany(ctxWithTimeout, docs); err != nil {
		return fmt.Errorf("error seeding default services: %w", err)
	}
	return nil
}
