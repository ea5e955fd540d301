package common

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/random"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a collision-resistant 64-bit identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// OrderRef builds a human-facing order reference: timestamp plus a short
// random suffix, e.g. VL-20260829153055-8JK2QD.
func OrderRef() string {
	return fmt.Sprintf("VL-%s-%s",
		time.Now().Format("20060102150405"),
		random.New().String(6, random.Uppercase+random.Numeric))
}
