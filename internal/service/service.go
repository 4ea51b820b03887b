package service

import (
	"quiz_web/internal/game"
	"quiz_web/internal/realtime"
	"quiz_web/internal/repository"
	"quiz_web/pkg/config"
)

type Services struct {
	User        *UserService
	Question    *QuestionService
	Progress    *ProgressService
	Leaderboard *LeaderboardService
	Room        *game.RoomService
	RoomStore   *realtime.Store
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	roomStore := realtime.NewStore()

	userService := NewUserService(repos.User)
	questionService := NewQuestionService(repos.Question)
	progressService := NewProgressService(repos.Progress)
	leaderboardService := NewLeaderboardService(repos.Leaderboard)
	roomService := game.NewRoomService(roomStore, questionService,
		cfg.Room.MaxQuestions, cfg.Room.CodeLength)

	return &Services{
		User:        userService,
		Question:    questionService,
		Progress:    progressService,
		Leaderboard: leaderboardService,
		Room:        roomService,
		RoomStore:   roomStore,
	}
}
