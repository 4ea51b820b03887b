package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Room   RoomConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type AuthConfig struct {
	JWTSecret string
}

type RoomConfig struct {
	MaxQuestions int // 每場多人遊戲的題目數量上限
	CodeLength   int // 房間代碼長度
	JoinBaseURL  string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	// 多人遊戲相關設定的預設值
	viper.SetDefault("room.maxquestions", 10)
	viper.SetDefault("room.codelength", 6)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
