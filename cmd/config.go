package cmd

type Config struct {
	HTTPPort      string
	PublicBaseURL string
	Production    bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TokenSecret string

	BarocertBaseURL         string
	BarocertLinkID          string
	BarocertSecretKey       string
	BarocertKakaoClientCode string
	BarocertNaverClientCode string
	BarocertPassClientCode  string
	CallCenterNumber        string

	SignQueueBackend string
	SignWorkers      int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}
