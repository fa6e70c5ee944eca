// Command seed loads a small demo data set of rooms and clients into the
// reservation database for local development.
package main

import (
	"context"

	"github.com/aurelia-hotels/service-reservation/internal/application"
	"github.com/aurelia-hotels/service-reservation/internal/config"
	"github.com/aurelia-hotels/service-reservation/internal/database"
	"github.com/aurelia-hotels/service-reservation/internal/domain"
	clientDomain "github.com/aurelia-hotels/service-reservation/internal/domain/client"
	"github.com/aurelia-hotels/service-reservation/internal/logger"
	"github.com/aurelia-hotels/service-reservation/internal/repository"
	"go.uber.org/zap"
)

// heuristicClassifier avoids reaching the live VIP API from a seed run.
type heuristicClassifier struct{}

func (heuristicClassifier) Classify(_ context.Context, email string) clientDomain.VIPStatus {
	return clientDomain.VIPStatus{}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.NewNamed(cfg.AppEnv, "seed")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.RunMigrations(cfg.DB.DatabaseURL(), "migrations", log); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	clock := domain.SystemClock{}
	roomService := application.NewRoomService(repository.NewGormRoomRepository(db), clock, log)
	clientService := application.NewClientService(repository.NewGormClientRepository(db), heuristicClassifier{}, clock, log)

	ctx := context.Background()

	roomRequests := []application.CreateRoomRequest{
		{Number: "101", Type: "standard", PricePerNight: 10000, Capacity: 2, Description: "Courtyard view", Amenities: []string{"wifi", "tv"}},
		{Number: "102", Type: "standard", PricePerNight: 10000, Capacity: 2, Amenities: []string{"wifi", "tv"}},
		{Number: "201", Type: "deluxe", PricePerNight: 18000, Capacity: 3, Description: "Sea view", Amenities: []string{"wifi", "tv", "minibar"}},
		{Number: "301", Type: "suite", PricePerNight: 32000, Capacity: 4, Amenities: []string{"wifi", "tv", "minibar", "jacuzzi"}},
		{Number: "401", Type: "presidential", PricePerNight: 95000, Capacity: 6, Description: "Top floor", Amenities: []string{"wifi", "tv", "minibar", "jacuzzi", "terrace"}},
	}
	for _, req := range roomRequests {
		if _, err := roomService.CreateRoom(ctx, req); err != nil {
			log.Warn("failed to seed room", zap.String("number", req.Number), zap.Error(err))
		}
	}

	clientRequests := []application.CreateClientRequest{
		{FirstName: "Ada", LastName: "Moreau", Email: "ada.moreau@example.com", Phone: "+33 1 23 45 67 89"},
		{FirstName: "Tomás", LastName: "Rivera", Email: "tomas.rivera@example.com"},
		{FirstName: "Ingrid", LastName: "Vogel", Email: "ingrid.vip@premium.com", Phone: "+49 30 1234567"},
	}
	for _, req := range clientRequests {
		if _, err := clientService.CreateClient(ctx, req); err != nil {
			log.Warn("failed to seed client", zap.String("email", req.Email), zap.Error(err))
		}
	}

	log.Info("seed data loaded")
}
