// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/car-api/pkg/core/model"
)

// MismatchingSemVerError reports an unsupported semantic version. Its
// first item is the supported version and its second item is the
// version which was actually found.
type MismatchingSemVerError [2]model.SemVer

func (msve *MismatchingSemVerError) Error() string {
	supported := (*msve)[0]
	actual := (*msve)[1]
	return fmt.Sprintf(
		"expected v%d.x (at most v%s), but got v%s",
		supported[0], supported.String(), actual.String(),
	)
}
