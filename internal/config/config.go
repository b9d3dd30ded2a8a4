package config

import (
	"fmt"
	"os"
	"strings"
)

// DefaultPeople перечисляет владельцев чек-листа, если CHECKLIST_PEOPLE не задан.
var DefaultPeople = []string{"성진", "지열", "성동"}

// Config содержит параметры подключения к хранилищу и внешним сервисам.
type Config struct {
	APIPort string

	DBDriver  string // postgres | sqlite3
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
	DBPath    string // путь к файлу SQLite

	BotToken   string
	People     []string
	PlacesFile string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load читает конфигурацию из переменных окружения.
func Load() *Config {
	return &Config{
		APIPort: get("API_PORT", "8080"),

		DBDriver:  get("DB_DRIVER", "postgres"),
		DBHost:    get("DB_HOST", "localhost"),
		DBPort:    get("DB_PORT", "5432"),
		DBUser:    get("DB_USER", "postgres"),
		DBPass:    os.Getenv("DB_PASS"),
		DBName:    get("DB_NAME", "itinerary"),
		DBSSLMode: get("DB_SSLMODE", "disable"),
		DBPath:    get("DB_PATH", "data/itinerary.db"),

		BotToken:   os.Getenv("BOT_TOKEN"),
		People:     parsePeople(os.Getenv("CHECKLIST_PEOPLE")),
		PlacesFile: os.Getenv("PLACES_FILE"),
	}
}

// DSN возвращает строку подключения для выбранного драйвера.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite3" {
		return c.DBPath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode,
	)
}

func parsePeople(raw string) []string {
	var people []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			people = append(people, p)
		}
	}
	if len(people) == 0 {
		return append([]string(nil), DefaultPeople...)
	}
	return people
}
