package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/Rohanmore123/mental-health-backend/internal/adapters/database"
	"github.com/Rohanmore123/mental-health-backend/internal/adapters/search"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/typesense"
	"github.com/Rohanmore123/mental-health-backend/pkg/config"
)

type seedDoctor struct {
	firstName      string
	lastName       string
	gender         string
	language       string
	religion       string
	address        string
	specialization string
	fee            float64
	days           []string
}

var seedDoctors = []seedDoctor{
	{"Asha", "Verma", "female", "Hindi", "Hindu", "Mumbai", "Anxiety and stress management", 1200, []string{"Monday", "Wednesday"}},
	{"Rahul", "Nair", "male", "English", "Hindu", "Bengaluru", "Depression and trauma counselling", 1500, []string{"Tuesday", "Thursday"}},
	{"Meera", "Joseph", "female", "English", "Christian", "Kochi", "Relationship therapy", 1000, []string{"Monday", "Friday"}},
	{"Imran", "Shaikh", "male", "Urdu", "Muslim", "Hyderabad", "Insomnia and sleep disorders", 900, []string{"Saturday"}},
	{"Divya", "Rao", "female", "Kannada", "Hindu", "Bengaluru", "General psychiatry", 1100, []string{"Wednesday", "Sunday"}},
	{"Arjun", "Patel", "male", "Gujarati", "Hindu", "Ahmedabad", "Stress and anxiety", 800, []string{"Monday", "Thursday"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				appointments,
				ratings,
				chat_messages,
				doctor_availability,
				doctors,
				patients,
				users
			RESTART IDENTITY CASCADE
		`); err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	for _, d := range seedDoctors {
		userID := uuid.New().String()
		doctorID := uuid.New().String()

		if _, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO users (user_id, email, first_name, last_name, gender, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
		`, userID, d.firstName+"."+d.lastName+"@example.com", d.firstName, d.lastName, d.gender); err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}

		if _, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO doctors (doctor_id, user_id, language, religion, address, gender, specialization, consultation_fee, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		`, doctorID, userID, d.language, d.religion, d.address, d.gender, d.specialization, d.fee); err != nil {
			log.Fatalf("Failed to seed doctor: %v", err)
		}

		for _, day := range d.days {
			if _, err := pgClient.DB().ExecContext(ctx, `
				INSERT INTO doctor_availability (availability_id, doctor_id, day_of_week, start_time, end_time)
				VALUES ($1, $2, $3, '09:00', '17:00')
			`, uuid.New().String(), doctorID, day); err != nil {
				log.Fatalf("Failed to seed availability: %v", err)
			}
		}
	}

	doctorRepo := database.NewDoctorAdapter(pgClient)
	seeded, err := doctorRepo.ListActive(ctx, repositories.DoctorFilter{})
	if err != nil {
		log.Fatalf("Failed to list seeded doctors: %v", err)
	}
	log.Printf("Seeded %d doctors", len(seeded))

	seedPatients(ctx, pgClient, seeded)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Typesense unavailable, skipping doctor indexing: %v", err)
		return
	}

	searchRepo := search.NewTypesenseAdapter(tsClient)
	if err := searchRepo.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to init Typesense schema: %v", err)
	}

	for _, doctor := range seeded {
		if err := searchRepo.Index(ctx, doctor); err != nil {
			log.Printf("Failed to index doctor %s: %v", doctor.ID, err)
		}
	}

	log.Printf("Indexed %d doctors into Typesense", len(seeded))
}

// seedPatients inserts demo patients along with chat history and ratings so
// the recommendation endpoint has something to score on a fresh database.
func seedPatients(ctx context.Context, pgClient *postgres.Client, doctors []*entities.Doctor) {
	patients := []struct {
		firstName string
		lastName  string
		gender    string
		language  string
		religion  string
		address   string
		messages  []string
	}{
		{"Sneha", "Kulkarni", "female", "Hindi", "Hindu", "Mumbai", []string{
			"I have been under a lot of stress at work lately",
			"Some nights I cannot sleep because of the anxiety",
		}},
		{"Kabir", "Menon", "male", "English", "Hindu", "Bengaluru", []string{
			"My relationship with my partner has been difficult",
		}},
	}

	for _, p := range patients {
		userID := uuid.New().String()
		patientID := uuid.New().String()

		if _, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO users (user_id, email, first_name, last_name, gender, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
		`, userID, p.firstName+"."+p.lastName+"@example.com", p.firstName, p.lastName, p.gender); err != nil {
			log.Fatalf("Failed to seed patient user: %v", err)
		}

		if _, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO patients (patient_id, user_id, language, religion, address, gender, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, patientID, userID, p.language, p.religion, p.address, p.gender); err != nil {
			log.Fatalf("Failed to seed patient: %v", err)
		}

		for _, msg := range p.messages {
			if _, err := pgClient.DB().ExecContext(ctx, `
				INSERT INTO chat_messages (message_id, sender_id, receiver_id, message_text, created_at)
				VALUES ($1, $2, $3, $4, NOW())
			`, uuid.New().String(), patientID, doctors[0].ID, msg); err != nil {
				log.Fatalf("Failed to seed chat message: %v", err)
			}
		}

		for i, doctor := range doctors {
			if i >= 3 {
				break
			}
			if _, err := pgClient.DB().ExecContext(ctx, `
				INSERT INTO ratings (rating_id, doctor_id, patient_id, rating, comment, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
			`, uuid.New().String(), doctor.ID, patientID, 3+i%3, "Helpful and attentive"); err != nil {
				log.Fatalf("Failed to seed rating: %v", err)
			}
		}

		log.Printf("Seeded patient %s %s (%s)", p.firstName, p.lastName, patientID)
	}
}
