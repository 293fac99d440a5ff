// Command seed loads demo officers and time logs, and can grant the admin
// group to an existing account.
//
//	go run ./cmd/seed
//	go run ./cmd/seed -admin 2310170
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
	"github.com/synchub/attendance/internal/infrastructure/config"
	"github.com/synchub/attendance/internal/infrastructure/db/sqlstore"
	"github.com/synchub/attendance/pkg/logger"
)

type sampleDay struct {
	date  string
	names []string
}

// Student numbers are assigned in order starting at 2310170.
var sampleDays = []sampleDay{
	{"2025-10-15", []string{
		"Jon Snow", "Rhaenyra Targaryen", "Daemon Targaryen", "Arya Stark",
		"Alicent Hightower", "Robb Stark", "Otto Hightower",
	}},
	{"2025-10-30", []string{
		"Daenerys Targaryen", "Tyrion Lannister", "Aemond Targaryen", "Cersei Lannister",
		"Aegon II Targaryen", "Jaime Lannister", "Rhaenys Targaryen", "Jacaerys Velaryon",
		"Sandor Clegane", "Brienne of Tarth", "Criston Cole", "Sansa Stark",
		"Viserys I Targaryen", "Larys Strong", "Theon Greyjoy",
	}},
	{"2025-11-02", []string{"Davos Seaworth", "Helaena Targaryen", "Melisandre"}},
}

const firstStudentNumber = 2310170

func main() {
	var (
		admin    = flag.String("admin", "", "student number of an existing account to add to the admin group")
		skipLogs = flag.Bool("no-logs", false, "only create officers, keep existing time logs")
		seed     = flag.Uint64("seed", 1, "random seed for the generated times")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}

	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		AutoMigrate: true,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if *admin != "" {
		if err := grantAdmin(ctx, sqlstore.NewUserRepository(db), *admin); err != nil {
			log.Fatal().Err(err).Str("student_number", *admin).Msg("grant admin failed")
		}
		log.Info().Str("student_number", *admin).Msg("admin group granted")
		return
	}

	s := seeder{
		officers: sqlstore.NewIdentityRepository(db),
		ledger:   sqlstore.NewLedgerRepository(db),
		rnd:      rand.New(rand.NewPCG(*seed, *seed)),
		loc:      loc,
		log:      log,
	}
	if err := s.run(ctx, !*skipLogs); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func grantAdmin(ctx context.Context, users ports.UserRepository, studentNumber string) error {
	user, err := users.FindByStudentNumber(ctx, studentNumber)
	if err != nil {
		return err
	}
	return users.AddToGroup(ctx, user.ID, domain.GroupAdmin)
}

type seeder struct {
	officers ports.IdentityRepository
	ledger   ports.LedgerRepository
	rnd      *rand.Rand
	loc      *time.Location
	log      zerolog.Logger
}

func (s seeder) run(ctx context.Context, withLogs bool) error {
	if withLogs {
		if err := s.clearLogs(ctx); err != nil {
			return err
		}
	}

	number := firstStudentNumber
	created := 0
	for _, day := range sampleDays {
		for _, name := range day.names {
			officer, err := s.officer(ctx, number, name)
			if err != nil {
				return err
			}
			number++
			if !withLogs {
				continue
			}
			if err := s.logDay(ctx, officer, day.date); err != nil {
				return err
			}
			created++
		}
		s.log.Info().Str("date", day.date).Int("officers", len(day.names)).Msg("day seeded")
	}
	s.log.Info().Int("time_logs", created).Int("dates", len(sampleDays)).Msg("sample data created")
	return nil
}

// officer returns the existing officer for number or creates it.
func (s seeder) officer(ctx context.Context, number int, name string) (*domain.Identity, error) {
	identity := &domain.Identity{
		Identifier: strconv.Itoa(number),
		Name:       name,
		Position:   domain.GroupOfficer,
	}
	err := s.officers.Create(ctx, identity)
	if errors.Is(err, domain.ErrIdentityExists) {
		return s.officers.FindByIdentifier(ctx, identity.Identifier)
	}
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// logDay writes one closed row: in between 08:00 and 11:59, out between 20:00 and 23:59.
func (s seeder) logDay(ctx context.Context, officer *domain.Identity, date string) error {
	day, err := time.ParseInLocation(domain.DateLayout, date, s.loc)
	if err != nil {
		return err
	}
	in := day.Add(time.Duration(8+s.rnd.IntN(4))*time.Hour + time.Duration(s.rnd.IntN(60))*time.Minute)
	out := day.Add(time.Duration(20+s.rnd.IntN(4))*time.Hour + time.Duration(s.rnd.IntN(60))*time.Minute)

	event := &domain.AttendanceEvent{IdentityID: officer.ID, Date: date, TimeIn: &in}
	if err := s.ledger.Open(ctx, event); err != nil {
		return err
	}
	return s.ledger.Close(ctx, event.ID, out)
}

func (s seeder) clearLogs(ctx context.Context) error {
	events, err := s.ledger.List(ctx, ports.LedgerFilter{})
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := s.ledger.Delete(ctx, ev.ID); err != nil {
			return err
		}
	}
	s.log.Info().Int("deleted", len(events)).Msg("existing time logs cleared")
	return nil
}
