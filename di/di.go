package di

import (
	"lodgehub/internal/events"
	"lodgehub/transport/http"
)

// App bundles the long-running parts of the service so main can start
// them together.
type App struct {
	HTTP     *http.HTTP
	Consumer events.BookingConsumer
}
