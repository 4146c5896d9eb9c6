package domain

import "time"

// Agent - представитель агентства. Во вложенном виде (Property.Agent) заполнены
// только контакты, в общем списке агентов - еще должность, био и специализации.
type Agent struct {
	Name        string
	Phone       string
	Email       string
	Image       string
	Title       string
	Bio         string
	Specialties []string
}

// Property - объект недвижимости из статического набора данных.
// После загрузки не изменяется.
type Property struct {
	ID          int
	Title       string
	Description string
	Address     string
	Location    string

	Price     int64
	Bedrooms  int
	Bathrooms int
	Area      int
	YearBuilt int

	Status   string
	Type     string
	Featured bool

	Amenities []string
	Images    []string

	Agent Agent
}

// CoverImage возвращает обложку (первое изображение) или "", если изображений нет
func (p Property) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Service struct {
	ID          int
	Title       string
	Description string
	Icon        string
}

// Dataset - весь набор данных сайта целиком
type Dataset struct {
	Properties []Property
	Agents     []Agent
	Services   []Service

	Source   string
	LoadedAt time.Time
}

// DatasetInfo - сводка о загруженном наборе без доступа к самим данным
type DatasetInfo struct {
	Source   string
	LoadedAt time.Time
	Counts   map[string]int
}

// Counts - для логов и healthz
func (d *Dataset) Counts() map[string]int {
	if d == nil {
		return map[string]int{"properties": 0, "agents": 0, "services": 0}
	}
	return map[string]int{
		"properties": len(d.Properties),
		"agents":     len(d.Agents),
		"services":   len(d.Services),
	}
}
