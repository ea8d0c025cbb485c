// Command abicodec converts contract data between JSON and the chain's binary format.
//
//	abicodec encode --abi token.abi --type transfer '{"from":"alice","to":"bob","quantity":"1.0000 SYS","memo":""}'
//	abicodec decode --contract eosio.token --type transfer 0000000000855c34...
//	abicodec abi pack token.abi
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
