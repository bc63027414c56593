// Package mocks provides mock implementations for testing the job portal services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().ConsumeSlot(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=account_repository_mock.go github.com/nguyenvanlong0501/job-portal/internal/core AccountRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/nguyenvanlong0501/job-portal/internal/core JobRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=application_repository_mock.go github.com/nguyenvanlong0501/job-portal/internal/core ApplicationRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/nguyenvanlong0501/job-portal/internal/core CacheRepository
