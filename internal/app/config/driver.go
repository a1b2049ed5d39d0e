package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port       string
		Host       string
		Username   string
		Password   string
		DbName     string
		ReplicaSet string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
		// PoolSize 0 keeps the go-redis default
		PoolSize int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port               string
		Host               string
		Username           string
		Password           string
		VHost              string
		HeartbeatInSeconds int
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)
