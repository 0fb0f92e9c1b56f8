package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/poiesic/servit/ingestion"
)

// combos lists the category and locality pairs the catalog covers. A
// category appearing in more combos gets proportionally more listings.
var combos = []struct {
	Category string
	Location string
}{
	{"AC Repair", "Hyderabad"},
	{"AC Repair", "Madhapur"},
	{"AC Repair", "Gachibowli"},
	{"Plumber", "Hyderabad"},
	{"Plumber", "Madhapur"},
	{"Plumber", "Kondapur"},
	{"Electrician", "Hyderabad"},
	{"Electrician", "Jubilee Hills"},
	{"Electrician", "Banjara Hills"},
	{"Restaurant", "Hyderabad"},
	{"Restaurant", "Jubilee Hills"},
	{"Restaurant", "Madhapur"},
	{"Restaurant", "Kukatpally"},
	{"Bike Service", "Hyderabad"},
	{"Bike Service", "Gachibowli"},
	{"Bike Service", "Miyapur"},
	{"Doctor", "Hyderabad"},
	{"Doctor", "Banjara Hills"},
	{"Doctor", "Madhapur"},
	{"Dentist", "Hyderabad"},
	{"Dentist", "Jubilee Hills"},
	{"Gym", "Hyderabad"},
	{"Gym", "Gachibowli"},
	{"Beauty Parlor", "Hyderabad"},
	{"Beauty Parlor", "Kondapur"},
	{"Lawyer", "Hyderabad"},
	{"CA", "Hyderabad"},
	{"Real Estate Agent", "Gachibowli"},
	{"Insurance Agent", "Begumpet"},
	{"Cafe", "Madhapur"},
	{"Cafe", "Hitech City"},
}

// namePatterns holds business name stems per category. The generated name
// is a stem plus the locality.
var namePatterns = map[string][]string{
	"AC Repair":     {"Cool Care", "Arctic Services", "Chill Zone", "Frost Free", "Ice Cool"},
	"Plumber":       {"AquaFix", "FlowPro", "PipeMax", "WaterWorks", "DrainMaster"},
	"Electrician":   {"PowerLine", "ElectroFix", "Spark Solutions", "Current Control", "Voltage Pro"},
	"Restaurant":    {"Spice Garden", "Taste Hub", "Food Palace", "Royal Kitchen", "Flavor Zone"},
	"Doctor":        {"HealthCare Plus", "MedCare", "Wellness Clinic", "Care Point", "Health First"},
	"Dentist":       {"Smile Care", "Dental Plus", "Perfect Smile", "Tooth Care", "Bright Dentals"},
	"Gym":           {"FitZone", "PowerHouse", "Iron Paradise", "Muscle Factory", "Fitness First"},
	"Beauty Parlor": {"Glamour Zone", "Style Studio", "Beauty Palace", "Glow Salon", "Charm Studio"},
}

var defaultPatterns = []string{"Professional Services", "Quality Care", "Expert Solutions"}

// areas are Hyderabad localities used for city-wide combos.
var areas = []string{
	"Madhapur", "Gachibowli", "Hitech City", "Kondapur", "Jubilee Hills",
	"Banjara Hills", "Kukatpally", "Miyapur", "Begumpet", "Secunderabad",
}

// priceRanges holds inclusive rupee ranges per category.
var priceRanges = map[string][2]int{
	"AC Repair":     {300, 600},
	"Plumber":       {200, 400},
	"Electrician":   {250, 450},
	"Restaurant":    {400, 1200},
	"Doctor":        {300, 800},
	"Dentist":       {500, 1000},
	"Gym":           {1000, 3000},
	"Beauty Parlor": {500, 1000},
}

var defaultPriceRange = [2]int{200, 800}

var (
	outFileName = flag.String("out", "services_seed.json", "output JSON listing file")
	perCombo    = flag.Int("per-combo", 4, "listings per category and locality pair")
	seed        = flag.Int64("seed", 1, "random seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// buildService fabricates one listing. City-wide combos get a random
// locality, locality combos keep theirs.
func buildService(rng *rand.Rand, category, location string) ingestion.RawService {
	area := location
	if area == "Hyderabad" {
		area = areas[rng.Intn(len(areas))]
	}

	patterns, ok := namePatterns[category]
	if !ok {
		patterns = defaultPatterns
	}
	stem := patterns[rng.Intn(len(patterns))]

	priceRange, ok := priceRanges[category]
	if !ok {
		priceRange = defaultPriceRange
	}
	price := priceRange[0] + rng.Intn(priceRange[1]-priceRange[0]+1)

	return ingestion.RawService{
		Name:     fmt.Sprintf("%s %s", stem, area),
		Category: category,
		Address:  fmt.Sprintf("Plot %d, %s, Hyderabad, Telangana %d", 1+rng.Intn(999), area, 500001+rng.Intn(90)),
		Phone:    fmt.Sprintf("98%d", 10000000+rng.Intn(90000000)),
		Rating:   fmt.Sprintf("%.1f ⭐", 3.8+rng.Float64()),
		Price:    fmt.Sprintf("₹%d", price),
	}
}

func main() {
	rng := rand.New(rand.NewSource(*seed))

	services := make([]ingestion.RawService, 0, len(combos)*(*perCombo))
	for _, combo := range combos {
		for i := 0; i < *perCombo; i++ {
			services = append(services, buildService(rng, combo.Category, combo.Location))
		}
	}

	data, err := json.MarshalIndent(services, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outFileName, data, 0644); err != nil {
		panic(err)
	}

	slog.Info("wrote seed catalog",
		"file", *outFileName,
		"listings", len(services),
		"combos", len(combos))
}
