// This file is part of nhshield.
//
// nhshield is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nhshield is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nhshield.  If not, see <https://www.gnu.org/licenses/>.

package patch

import (
	"fmt"

	"github.com/jetsetilly/nhshield/logger"
	"github.com/jetsetilly/nhshield/schedule"
)

// Request work to be done during the next Tick(). Edits to the Hand and Back
// descriptors make their own requests.
func (s *Shield) Request(r schedule.Request) {
	s.queue.Push(r)
}

// Pending returns the requests that will be run by the next Tick().
func (s *Shield) Pending() []schedule.Request {
	return s.queue.Pending()
}

// Tick runs pending requests. It should be called once per frame. Requests
// are held until the patch block has been written by SaveLoaded().
func (s *Shield) Tick() error {
	if !s.live {
		return nil
	}
	return s.queue.Drain(s.run)
}

func (s *Shield) run(r schedule.Request) error {
	logger.Logf(&s.log, "patch", "running request: %s", r)

	switch r {
	case schedule.HandMatrix:
		return s.UpdateHandMatrix()
	case schedule.ScaleMatrix:
		return s.UpdateScaleMatrix()
	case schedule.EquipChild:
		return s.EquipChild()
	case schedule.EquipAdult:
		return s.EquipAdult()
	case schedule.ResetDefaults:
		return s.ResetDefaults()
	}

	return fmt.Errorf("patch: unknown request: %d", r)
}
