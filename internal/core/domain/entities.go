package domain

// ChatSender identifies who produced a chat message
type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderBot  ChatSender = "bot"
)

// WeatherCondition is the classified forecast condition
type WeatherCondition string

const (
	ConditionSunny        WeatherCondition = "sunny"
	ConditionCloudy       WeatherCondition = "cloudy"
	ConditionRainy        WeatherCondition = "rainy"
	ConditionPartlyCloudy WeatherCondition = "partly-cloudy"
)

// ForecastDay is a single day of classified forecast data
type ForecastDay struct {
	Date      string           `json:"date"`
	TempC     float64          `json:"temp_c"`
	Condition WeatherCondition `json:"condition"`
}
