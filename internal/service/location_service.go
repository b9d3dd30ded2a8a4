package service

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"itinerary/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed places.yaml
var defaultPlaces []byte

// PlaceTable описывает справочник мест и параметры карты.
type PlaceTable struct {
	Center model.Coordinates `yaml:"center"`
	Zoom   int               `yaml:"zoom"`
	Places []model.Place     `yaml:"places"`
}

// LoadPlaces читает справочник мест в формате YAML.
func LoadPlaces(r io.Reader) (*PlaceTable, error) {
	var table PlaceTable
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("ошибка разбора справочника мест: %w", err)
	}
	for i, p := range table.Places {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("место #%d без названия", i+1)
		}
	}
	return &table, nil
}

// DefaultPlaces возвращает встроенный справочник (районы Токио).
func DefaultPlaces() *PlaceTable {
	table, err := LoadPlaces(strings.NewReader(string(defaultPlaces)))
	if err != nil {
		panic(err)
	}
	return table
}

// LoadPlacesFile читает справочник из файла; пустой путь означает встроенный справочник.
func LoadPlacesFile(path string) (*PlaceTable, error) {
	if path == "" {
		return DefaultPlaces(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть справочник мест: %w", err)
	}
	defer f.Close()
	return LoadPlaces(f)
}

// LocationService сопоставляет свободный текст места с координатами из справочника.
type LocationService struct {
	table *PlaceTable
	keys  [][]string // нормализованные название и синонимы для каждого места
}

// NewLocationService создает сервис поверх справочника мест.
func NewLocationService(table *PlaceTable) *LocationService {
	keys := make([][]string, len(table.Places))
	for i, p := range table.Places {
		for _, k := range append([]string{p.Name}, p.Aliases...) {
			if k = normalizePlace(k); k != "" {
				keys[i] = append(keys[i], k)
			}
		}
	}
	return &LocationService{table: table, keys: keys}
}

// Resolve ищет первое место справочника, название или синоним которого входит в location.
// Отсутствие совпадения ошибкой не является: такой пункт просто не попадает на карту.
func (s *LocationService) Resolve(location string) (model.Place, bool) {
	loc := normalizePlace(location)
	if loc == "" {
		return model.Place{}, false
	}
	for i, keys := range s.keys {
		for _, k := range keys {
			if strings.Contains(loc, k) {
				return s.table.Places[i], true
			}
		}
	}
	return model.Place{}, false
}

// Markers возвращает маркеры для пунктов с распознанным местом, сохраняя порядок пунктов.
func (s *LocationService) Markers(entries []model.ScheduleEntry) []model.Marker {
	markers := []model.Marker{}
	for _, e := range entries {
		if e.Location == nil {
			continue
		}
		if place, ok := s.Resolve(*e.Location); ok {
			markers = append(markers, model.Marker{Entry: e, Place: place.Name, Coords: place.Coordinates})
		}
	}
	return markers
}

// MapView собирает данные карты для списка пунктов.
func (s *LocationService) MapView(entries []model.ScheduleEntry) model.MapView {
	return model.MapView{Center: s.table.Center, Zoom: s.table.Zoom, Markers: s.Markers(entries)}
}

func normalizePlace(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
