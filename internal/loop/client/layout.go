package client

import (
	"math"

	"github.com/tomz197/skyraid/internal/loop/config"
)

// fitBoard sizes the render area for a terminal. The area is capped at the
// max render resolution and shaped to the board's aspect ratio, counting two
// sub-pixels per row, then centred.
func fitBoard(termWidth, termHeight int, boardW, boardH float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)

	if want := int(math.Round(float64(renderHeight*2) * boardW / boardH)); want < renderWidth {
		renderWidth = max(want, 1)
	} else {
		renderHeight = max(int(math.Round(float64(renderWidth)*boardH/boardW/2)), 1)
	}

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
