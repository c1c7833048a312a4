package db

import (
	_ "embed"
	"fmt"

	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	ViolationTypes []models.ViolationType `yaml:"violation_types"`
	Rewards        []models.Reward        `yaml:"rewards"`
}

// LoadCatalog parses the built-in violation type and reward catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, r := range c.Rewards {
		if !r.Category.Valid() || r.PointsCost < 0 {
			return nil, fmt.Errorf("invalid reward %q in catalog", r.ID)
		}
	}
	return &c, nil
}

// SeedCatalog inserts catalog rows that are not there yet. Existing rows are left alone.
func SeedCatalog(db *gorm.DB) error {
	c, err := LoadCatalog()
	if err != nil {
		return err
	}
	for _, vt := range c.ViolationTypes {
		vt := vt
		if err := db.Where(models.ViolationType{Label: vt.Label}).FirstOrCreate(&vt).Error; err != nil {
			return fmt.Errorf("seed violation type %s: %w", vt.Label, err)
		}
	}
	for _, r := range c.Rewards {
		r := r
		if err := db.Where(models.Reward{ID: r.ID}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed reward %s: %w", r.ID, err)
		}
	}
	logger.Sugar.Infow("catalog seeded", "violation_types", len(c.ViolationTypes), "rewards", len(c.Rewards))
	return nil
}

// DemoPassword is the password of the demo accounts created by SeedDemoUsers.
const DemoPassword = "password123"

// SeedDemoUsers creates one official and one citizen account for trying the app out.
func SeedDemoUsers(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demo := []models.User{
		{Name: "Traffic Officer", Email: "admin@civiceye.app", Role: models.RoleAdmin},
		{Name: "Rahul Citizen", Email: "citizen@civiceye.app", Role: models.RoleCitizen},
	}
	for _, u := range demo {
		u := u
		u.HashedPassword = string(hash)
		u.AvatarURL = models.AvatarURLFor(u.Name)
		if err := db.Where(models.User{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	return nil
}
