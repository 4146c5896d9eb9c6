package domain

// Иконки услуг. Набор имен закрытый, поэтому таблица статическая.
var serviceIcons = map[string]string{
	"Home":          "/icons/home.svg",
	"Building":      "/icons/building.svg",
	"Building2":     "/icons/building-2.svg",
	"Key":           "/icons/key.svg",
	"TrendingUp":    "/icons/trending-up.svg",
	"Briefcase":     "/icons/briefcase.svg",
	"Users":         "/icons/users.svg",
	"Search":        "/icons/search.svg",
	"FileText":      "/icons/file-text.svg",
	"Shield":        "/icons/shield.svg",
	"Truck":         "/icons/truck.svg",
	"Landmark":      "/icons/landmark.svg",
	"PiggyBank":     "/icons/piggy-bank.svg",
	"Wrench":        "/icons/wrench.svg",
	"Handshake":     "/icons/handshake.svg",
	"MapPin":        "/icons/map-pin.svg",
	"Calculator":    "/icons/calculator.svg",
	"ClipboardList": "/icons/clipboard-list.svg",
}

// ServiceIcon возвращает путь к иконке по имени из данных.
// Для неизвестного имени ok == false, иконка просто не показывается.
func ServiceIcon(name string) (string, bool) {
	asset, ok := serviceIcons[name]
	return asset, ok
}
