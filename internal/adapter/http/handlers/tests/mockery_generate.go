package tests

// The hand-written taskServiceMock covers what the handler tests need. To
// generate a full expecter-style mock instead:
//
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
