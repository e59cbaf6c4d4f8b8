package db

import (
	"fmt"
	"log"

	"github.com/ecosnap/ecosnap/config"
	"github.com/ecosnap/ecosnap/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	log.Printf("Connecting to postgres: %s@%s:%d/%s", c.PostgresUser, c.PostgresHost, c.PostgresPort, c.PostgresDB)
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=Asia/Kolkata",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

// SeedRewards guarantees the catalog has a starter set so the redeem flow
// works on a fresh database.
func SeedRewards(db *gorm.DB) error {
	rewards := []models.Reward{
		{Name: "Cloth Tote Bag", Description: "Reusable cotton tote", PointsRequired: 200, Stock: 50, Category: "merchandise"},
		{Name: "Steel Water Bottle", Description: "1L insulated bottle", PointsRequired: 500, Stock: 25, Category: "merchandise"},
		{Name: "Sapling Kit", Description: "Native tree sapling with planter", PointsRequired: 150, Stock: 100, Category: "green"},
	}

	for _, reward := range rewards {
		if err := db.FirstOrCreate(&reward, models.Reward{Name: reward.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.GovernmentBody{},
		&models.Blacklist{},
		&models.Hotspot{},
		&models.GarbageRequest{},
		&models.Reward{},
		&models.Redemption{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRewards(db); err != nil {
		return fmt.Errorf("seeding rewards error: %v", err)
	}

	return nil
}
