package transport

// User is the citizen profile a ranking request is computed for.
type User struct {
	ID            int64  `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	ActivityLevel string `json:"activityLevel" validate:"required,oneof=low medium high"`
	Phone         string `json:"phone" validate:"required"`
}

// ServiceInput is one pending government service obligation.
// DaysLeft may be negative for overdue services.
type ServiceInput struct {
	ID                 int64   `json:"id" validate:"required"`
	Name               string  `json:"name" validate:"required"`
	DaysLeft           int     `json:"daysLeft"`
	Seasonality        string  `json:"seasonality" validate:"required,oneof=in_season off_season"`
	CategoryImportance float64 `json:"categoryImportance" validate:"gte=0,lte=1"`
}

// RecommendationRequest is the body of a ranking request.
// TopN defaults to the configured value when omitted.
type RecommendationRequest struct {
	User     User           `json:"user" validate:"required"`
	Services []ServiceInput `json:"services" validate:"dive"`
	TopN     *int           `json:"topN,omitempty" validate:"omitempty,min=1"`
}

// ComponentScore is one weighted factor of a service's final score.
type ComponentScore struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// ScoreBreakdown details how a final score was composed.
type ScoreBreakdown struct {
	Urgency     ComponentScore `json:"urgency"`
	Seasonality ComponentScore `json:"seasonality"`
	Category    ComponentScore `json:"category"`
	Activity    ComponentScore `json:"activity"`
}

// RankedService is one scored service in ranked order.
type RankedService struct {
	ServiceID   int64          `json:"serviceId"`
	ServiceName string         `json:"serviceName"`
	FinalScore  float64        `json:"finalScore"`
	Priority    string         `json:"priority"`
	Reasons     []string       `json:"reasons"`
	DaysLeft    int            `json:"daysLeft"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

// SMSAlert is a ready-to-send text message for an urgent service.
type SMSAlert struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Priority    string `json:"priority"`
	Message     string `json:"message"`
	ActionLink  string `json:"actionLink"`
	Phone       string `json:"phone"`
}

// Summary aggregates statistics over all scored services, not just the top N.
type Summary struct {
	TotalServices     int            `json:"totalServices"`
	UrgentServices    int            `json:"urgentServices"`
	PriorityBreakdown map[string]int `json:"priorityBreakdown"`
	AverageScore      float64        `json:"averageScore"`
}

// RecommendationResponse is the full ranking result.
type RecommendationResponse struct {
	Status            string          `json:"status"`
	Message           string          `json:"message,omitempty"`
	UserID            int64           `json:"userId"`
	UserName          string          `json:"userName"`
	TotalServices     int             `json:"totalServices"`
	Recommendations   []RankedService `json:"recommendations"`
	TopRecommendation *RankedService  `json:"topRecommendation"`
	SMSAlerts         []SMSAlert      `json:"smsAlerts"`
	Summary           *Summary        `json:"summary,omitempty"`
	GeneratedAt       string          `json:"generatedAt,omitempty"`
}

// WeightFactor describes one scoring factor for the weights endpoint.
type WeightFactor struct {
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// WeightsResponse exposes the active scoring model weights.
type WeightsResponse struct {
	Factors map[string]WeightFactor `json:"factors"`
	Note    string                  `json:"note"`
}
