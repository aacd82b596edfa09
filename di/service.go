package di

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/telegram"
)

// Service bundles the two transports that cmd/app runs side by side.
type Service struct {
	HTTP *http.HTTP
	Bot  *telegram.Bot
}
