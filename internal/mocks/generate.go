package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LeagueClient --dir ../usecase --output usecase --outpkg usecasemock --filename league_client_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/athlete --output domain/athlete --outpkg athletemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/synclog --output domain/synclog --outpkg synclogmock --filename repository_mock.go
