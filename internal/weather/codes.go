package weather

const (
	unavailableText = "Dados indisponíveis"
	unknownText     = "Condições desconhecidas"
	unknownIcon     = "❓"
	defaultIcon     = "🌤️"
)

// Tomorrow.io weatherCode → Portuguese description. All cloud levels are
// shown as "Parcialmente nublado" on the screens.
var descriptions = map[int]string{
	1000: "Céu limpo",
	1100: "Parcialmente nublado",
	1101: "Parcialmente nublado",
	1102: "Parcialmente nublado",
	1001: "Parcialmente nublado",

	2000: "Nevoeiro",
	2100: "Nevoeiro leve",

	4000: "Garoa",
	4001: "Chuva",
	4200: "Chuva leve",
	4201: "Chuva forte",

	5000: "Neve",
	5001: "Flocos de neve esparsos",
	5100: "Neve leve",
	5101: "Neve forte",

	6000: "Garoa congelante",
	6001: "Chuva congelante",
	6200: "Chuva congelante leve",
	6201: "Chuva congelante forte",

	7000: "Granizo/neve granular",
	7101: "Granizo intenso",
	7102: "Granizo leve",

	8000: "Tempestade com trovoadas",
}

var icons = map[int]string{
	1000: "☀️",
	1100: "🌤️",
	1101: "🌤️",
	1102: "☁️",
	1001: "☁️",
	2000: "🌫️",
	2100: "🌫️",
	4000: "🌦️",
	4001: "🌦️",
	4200: "🌦️",
	4201: "🌧️",
	6001: "🌧️",
	6201: "🌧️",
	5000: "❄️",
	5001: "❄️",
	5100: "❄️",
	5101: "❄️",
	6000: "🌨️",
	6200: "🌨️",
	7000: "🌨️",
	7101: "🌨️",
	7102: "🌨️",
	8000: "⛈️",
}

// Description translates a weather code into Portuguese.
func Description(code *int) string {
	if code == nil {
		return unavailableText
	}
	if d, ok := descriptions[*code]; ok {
		return d
	}
	return unknownText
}

// Icon returns the emoji shown for a weather code.
func Icon(code *int) string {
	if code == nil {
		return unknownIcon
	}
	if i, ok := icons[*code]; ok {
		return i
	}
	return defaultIcon
}

var weekdays = [...]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}
