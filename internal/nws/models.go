package nws

// Measurement is the uniform (value, unit, quality) triple the NWS API uses
// for every physical quantity. Value is a pointer because upstream readings
// are frequently null; an absent value must stay absent through
// normalization, never become zero.
type Measurement struct {
	Value          *float64 `json:"value"`
	UnitCode       string   `json:"unitCode"`
	QualityControl string   `json:"qualityControl"`
}

// pointProperties is the metadata block of a /points/{lat},{lon} response.
// The URL-shaped fields are either present and usable or absent; each
// operation treats absence of its required URL as a terminal failure.
type pointProperties struct {
	GridID              string `json:"gridId"`
	GridX               int    `json:"gridX"`
	GridY               int    `json:"gridY"`
	Forecast            string `json:"forecast"`
	ObservationStations string `json:"observationStations"`
	RadarStation        string `json:"radarStation"`
	RelativeLocation    struct {
		Properties struct {
			City  string `json:"city"`
			State string `json:"state"`
		} `json:"properties"`
	} `json:"relativeLocation"`
}

type pointResponse struct {
	Properties pointProperties `json:"properties"`
}

type stationsResponse struct {
	Features []struct {
		Properties struct {
			StationIdentifier string `json:"stationIdentifier"`
			Name              string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

type observationProperties struct {
	Timestamp          string      `json:"timestamp"`
	TextDescription    string      `json:"textDescription"`
	Temperature        Measurement `json:"temperature"`
	Dewpoint           Measurement `json:"dewpoint"`
	WindDirection      Measurement `json:"windDirection"`
	WindSpeed          Measurement `json:"windSpeed"`
	WindGust           Measurement `json:"windGust"`
	BarometricPressure Measurement `json:"barometricPressure"`
	Visibility         Measurement `json:"visibility"`
	RelativeHumidity   Measurement `json:"relativeHumidity"`
	WindChill          Measurement `json:"windChill"`
	HeatIndex          Measurement `json:"heatIndex"`
}

type observationResponse struct {
	Properties observationProperties `json:"properties"`
}

type forecastPeriodPayload struct {
	Number                     int    `json:"number"`
	Name                       string `json:"name"`
	StartTime                  string `json:"startTime"`
	EndTime                    string `json:"endTime"`
	IsDaytime                  bool   `json:"isDaytime"`
	Temperature                int    `json:"temperature"`
	TemperatureUnit            string `json:"temperatureUnit"`
	ProbabilityOfPrecipitation struct {
		Value *float64 `json:"value"`
	} `json:"probabilityOfPrecipitation"`
	RelativeHumidity struct {
		Value *float64 `json:"value"`
	} `json:"relativeHumidity"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	Icon             string `json:"icon"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriodPayload `json:"periods"`
	} `json:"properties"`
}

// radarStationResponse is the /radar/stations/{id} document. Geometry
// coordinates arrive in (longitude, latitude) order.
type radarStationResponse struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Name string `json:"name"`
		RDA  struct {
			Properties struct {
				Mode              string `json:"mode"`
				OperabilityStatus string `json:"operabilityStatus"`
			} `json:"properties"`
		} `json:"rda"`
	} `json:"properties"`
}

// CurrentConditionsResult is the normalized current-observation shape.
// Every dual-unit pair is derived from a single upstream value; when the
// source is absent both sides are absent.
type CurrentConditionsResult struct {
	Location        string   `json:"location"`
	Station         string   `json:"station"`
	Observed        string   `json:"observed,omitempty"`
	Conditions      string   `json:"conditions"`
	TemperatureC    *float64 `json:"temperatureC"`
	TemperatureF    *float64 `json:"temperatureF"`
	FeelsLikeC      *float64 `json:"feelsLikeC"`
	FeelsLikeF      *float64 `json:"feelsLikeF"`
	DewpointC       *float64 `json:"dewpointC"`
	DewpointF       *float64 `json:"dewpointF"`
	HumidityPercent *float64 `json:"humidityPercent"`
	// WindSpeed is intentionally a formatted string such as "12.4 mph";
	// the gust field stays numeric.
	WindSpeed     *string  `json:"windSpeed"`
	WindGustMph   *float64 `json:"windGustMph"`
	WindDirection *string  `json:"windDirection"`
	PressureHpa   *float64 `json:"pressureHpa"`
	PressureInHg  *float64 `json:"pressureInHg"`
	VisibilityKm  *float64 `json:"visibilityKm"`
	VisibilityMi  *float64 `json:"visibilityMi"`
}

// ForecastPeriod is one provider period mapped 1:1, in provider order.
type ForecastPeriod struct {
	Name                string   `json:"name"`
	StartTime           string   `json:"startTime"`
	EndTime             string   `json:"endTime"`
	IsDaytime           bool     `json:"isDaytime"`
	Temperature         int      `json:"temperature"`
	TemperatureUnit     string   `json:"temperatureUnit"`
	PrecipitationChance *float64 `json:"precipitationChance"`
	HumidityPercent     *float64 `json:"humidityPercent"`
	WindSpeed           string   `json:"windSpeed"`
	WindDirection       string   `json:"windDirection"`
	ShortForecast       string   `json:"shortForecast"`
	DetailedForecast    string   `json:"detailedForecast"`
	Icon                string   `json:"icon"`
}

// ForecastResult is the normalized multi-period forecast shape.
type ForecastResult struct {
	Location string           `json:"location"`
	Periods  []ForecastPeriod `json:"periods"`
}

// RadarInfoResult describes the radar station covering a point, with
// looping and single-frame imagery URLs keyed by the station identifier.
type RadarInfoResult struct {
	Station        string   `json:"station"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Mode           string   `json:"mode"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	LoopImageURL   string   `json:"loopImageUrl"`
	StaticImageURL string   `json:"staticImageUrl"`
}
