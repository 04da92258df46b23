//go:generate mockgen -source=../cart_storage.go         -destination=./mock_cart_storage.go         -package=mocks
//go:generate mockgen -source=../cart_validator.go       -destination=./mock_cart_validator.go       -package=mocks
//go:generate mockgen -source=../catalog_client.go       -destination=./mock_catalog_client.go       -package=mocks
//go:generate mockgen -source=../cart_event_publisher.go -destination=./mock_cart_event_publisher.go -package=mocks
//go:generate mockgen -source=../logger.go               -destination=./mock_logger.go               -package=mocks
//go:generate mockgen -source=../message_consumer.go     -destination=./mock_message_consumer.go     -package=mocks
//go:generate mockgen -source=../cart_service.go         -destination=./mock_cart_service.go         -package=mocks

package mocks
