package db

type AllContest struct {
	Host          string
	Vanity        string
	Name          string
	Url           string
	StartTimeUnix int64
	Duration      int64
	CreatedAt     int64
}

type AllHackathon struct {
	Host                       string
	Vanity                     string
	Name                       string
	Url                        string
	RegisterationStartTimeUnix int64
	RegisterationEndTimeUnix   int64
	HackathonStartTimeUnix     int64
	HackathonEndTimeUnix       int64
	CreatedAt                  int64
}

type PlatformProfile struct {
	UserID                string
	Platform              string
	Username              string
	Rating                *int64
	AttendedContestsCount *int64
	Badge                 *string
	TotalQuestions        *int64
	EasyQuestions         *int64
	MediumQuestions       *int64
	HardQuestions         *int64
	FetchTime             int64
	ShowOnWebsite         bool
}

type UpcomingContest struct {
	Host          string
	Vanity        string
	Name          string
	Url           string
	StartTimeUnix int64
	Duration      int64
	CreatedAt     int64
}

type UpcomingHackathon struct {
	Host                       string
	Vanity                     string
	Name                       string
	Url                        string
	RegisterationStartTimeUnix int64
	RegisterationEndTimeUnix   int64
	HackathonStartTimeUnix     int64
	HackathonEndTimeUnix       int64
	CreatedAt                  int64
}

type User struct {
	ID               string
	Uid              *string
	Username         string
	Name             string
	Email            string
	Picture          string
	DigitomizeRating int64
	Skills           string
	Education        string
	Bio              *string
	PhoneNumber      *string
	DateOfBirth      *string
	Github           *string
	SocialLinkedin   string
	SocialTwitter    string
	SocialInstagram  string
	UpdatesDay       string
	UpdatesCount     int64
	CreatedAt        int64
	UpdatedAt        int64
}
