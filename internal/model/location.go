package model

// Coordinates задает географическую точку.
type Coordinates struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lng" yaml:"lng"`
}

// Place представляет известное место из статического справочника координат.
type Place struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases"`
	Coordinates `yaml:",inline"`
}

// Marker связывает пункт маршрута с найденными координатами места.
type Marker struct {
	Entry  ScheduleEntry `json:"entry"`
	Place  string        `json:"place"`
	Coords Coordinates   `json:"coords"`
}

// MapView описывает карту: центр, масштаб и маркеры.
type MapView struct {
	Center  Coordinates `json:"center"`
	Zoom    int         `json:"zoom"`
	Markers []Marker    `json:"markers"`
}
