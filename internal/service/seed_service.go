package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

type seedItem struct {
	name    string
	reorder int
	stock   int
}

type seedTeacher struct {
	name       string
	department string
	email      string
}

// Seeder populates an empty database with a starter catalog, departments and
// recipients so a fresh install is immediately usable. Initial stock flows
// through the ledger, so even seeded quantities have log entries.
type Seeder struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	teachers    repository.TeacherRepository
	txRunner    repository.TxRunner
	ledger      *Ledger
	logger      zerolog.Logger
}

// NewSeeder constructs the database seeder.
func NewSeeder(
	users repository.UserRepository,
	departments repository.DepartmentRepository,
	teachers repository.TeacherRepository,
	txRunner repository.TxRunner,
	ledger *Ledger,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		users:       users,
		departments: departments,
		teachers:    teachers,
		txRunner:    txRunner,
		ledger:      ledger,
		logger:      logger.With().Str("component", "seeder").Logger(),
	}
}

// Run seeds the database once. A non-empty user table means the install is
// already in use and the seeder backs off entirely.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug().Msg("database already seeded, skipping")
		return nil
	}

	admin := models.User{Name: "Storeroom Admin", Role: models.RoleAdmin}
	if err := s.users.Create(ctx, &admin); err != nil {
		return err
	}

	departmentIDs := make(map[string]uint)
	for _, name := range []string{"Mathematics", "Science", "Languages", "Administration"} {
		department := models.Department{Name: name, Active: true}
		if err := s.departments.Create(ctx, &department); err != nil {
			return err
		}
		departmentIDs[name] = department.ID
	}

	for _, t := range []seedTeacher{
		{name: "Ana Morales", department: "Mathematics", email: "ana.morales@example.edu"},
		{name: "Ben Okafor", department: "Science", email: "ben.okafor@example.edu"},
		{name: "Clara Lindt", department: "Languages", email: "clara.lindt@example.edu"},
	} {
		teacher := models.Teacher{
			Name:         t.name,
			DepartmentID: departmentIDs[t.department],
			Email:        t.email,
			Active:       true,
		}
		if err := s.teachers.Create(ctx, &teacher); err != nil {
			return err
		}
	}

	items := []seedItem{
		{name: "Whiteboard Marker", reorder: 10, stock: 60},
		{name: "A4 Paper Ream", reorder: 5, stock: 40},
		{name: "Stapler", reorder: 2, stock: 8},
		{name: "Dry Eraser", reorder: 5, stock: 25},
		{name: "Ballpoint Pen (Box)", reorder: 6, stock: 30},
	}

	err = s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		for _, si := range items {
			item := models.Item{
				Name:         si.name,
				SKU:          generateSKU(),
				ReorderLevel: si.reorder,
				Active:       true,
			}
			barcode := generateBarcodeValue()
			item.Barcode = &barcode

			if err := repos.Items.Create(ctx, &item); err != nil {
				return err
			}
			if _, err := s.ledger.Adjust(ctx, repos, AdjustmentInput{
				ItemID:  item.ID,
				Delta:   si.stock,
				Event:   models.EventAdjust,
				Note:    "initial stock",
				ActorID: &admin.ID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int("items", len(items)).Msg("database seeded")
	return nil
}
