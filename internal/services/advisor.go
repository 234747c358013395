package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/repos"
)

// AdvisorService backs the "AI" endpoints. These are deliberate
// keyword-matching stubs (real image recognition is a non-goal); the
// chat tips are the only part that reads live plant state.
type AdvisorService interface {
	IdentifyPlant(imageURL string) IdentifyResult
	DiagnoseDisease(imageURL string) DiagnosisResult
	CareChat(ctx context.Context, plantID uuid.UUID, question string) (string, error)
}

type IdentifyResult struct {
	Species    string  `json:"species"`
	Confidence float64 `json:"confidence"`
	CareGuide  string  `json:"care_guide"`
}

type DiagnosisResult struct {
	Disease   string `json:"disease"`
	Severity  string `json:"severity"`
	Treatment string `json:"treatment"`
}

type advisorService struct {
	db           *gorm.DB
	log          *logger.Logger
	plantRepo    repos.UserPlantRepo
	templateRepo repos.PlantTemplateRepo
}

func NewAdvisorService(db *gorm.DB, log *logger.Logger, plantRepo repos.UserPlantRepo, templateRepo repos.PlantTemplateRepo) AdvisorService {
	serviceLog := log.With("service", "AdvisorService")
	return &advisorService{db: db, log: serviceLog, plantRepo: plantRepo, templateRepo: templateRepo}
}

type speciesGuess struct {
	keywords []string
	species  string
	guide    string
}

var speciesGuesses = []speciesGuess{
	{
		keywords: []string{"rose"},
		species:  "Rose",
		guide:    "Full sun, water regularly, fertilize during growing season.",
	},
	{
		keywords: []string{"aloe"},
		species:  "Aloe Vera",
		guide:    "Bright light, water sparingly, allow soil to dry out.",
	},
	{
		keywords: []string{"ficus"},
		species:  "Ficus",
		guide:    "Bright indirect light, keep soil lightly moist.",
	},
	{
		keywords: []string{"money", "pothos"},
		species:  "Money Plant (Pothos)",
		guide:    "Low to bright light, water when soil is half dry.",
	},
}

func (as *advisorService) IdentifyPlant(imageURL string) IdentifyResult {
	url := strings.ToLower(imageURL)
	for _, g := range speciesGuesses {
		for _, kw := range g.keywords {
			if strings.Contains(url, kw) {
				return IdentifyResult{Species: g.species, Confidence: 0.72, CareGuide: g.guide}
			}
		}
	}
	return IdentifyResult{
		Species:    "Unknown",
		Confidence: 0.4,
		CareGuide:  "General care: bright indirect light, water when top inch is dry.",
	}
}

func (as *advisorService) DiagnoseDisease(imageURL string) DiagnosisResult {
	url := strings.ToLower(imageURL)
	if strings.Contains(url, "spot") || strings.Contains(url, "brown") {
		return DiagnosisResult{
			Disease:   "Leaf Spot",
			Severity:  "moderate",
			Treatment: "Remove affected leaves, improve airflow, reduce overhead watering.",
		}
	}
	if strings.Contains(url, "mold") || strings.Contains(url, "powder") {
		return DiagnosisResult{
			Disease:   "Powdery Mildew",
			Severity:  "high",
			Treatment: "Apply fungicide, increase light, reduce humidity.",
		}
	}
	return DiagnosisResult{
		Disease:   "Unknown",
		Severity:  "low",
		Treatment: "Monitor plant, ensure proper care and hygiene.",
	}
}

// CareChat answers with stat-driven tips: each tip fires when the
// corresponding stat sits too far under its ideal.
func (as *advisorService) CareChat(ctx context.Context, plantID uuid.UUID, question string) (string, error) {
	plant, err := as.plantRepo.GetByID(ctx, nil, plantID)
	if err != nil {
		return "", fmt.Errorf("error fetching plant: %w", err)
	}
	template, err := as.templateRepo.GetByID(ctx, nil, plant.TemplateID)
	if err != nil {
		return "", fmt.Errorf("error resolving template: %w", err)
	}

	var tips []string
	if plant.Hydration < template.IdealMoisture-10 {
		tips = append(tips, "Your plant looks thirsty. Consider watering it.")
	}
	if plant.Nutrition < 50 {
		tips = append(tips, "A small dose of fertilizer can boost growth.")
	}
	if plant.Sunlight < template.IdealLight-10 {
		tips = append(tips, "Move it to a brighter spot for more light.")
	}
	if plant.HealthScore < 70 {
		tips = append(tips, "Overall health is low; adjust watering, light, and nutrition.")
	}
	if len(tips) == 0 {
		tips = append(tips, "Your plant is doing great! Keep up the consistent care.")
	}
	return strings.Join(tips, " "), nil
}
