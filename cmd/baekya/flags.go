package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/spf13/cobra"
)

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVarP(url, "url", "u", "http://127.0.0.1:26670", "baekya service url")
}

func senderFlag(cmd *cobra.Command, sender *string) {
	cmd.Flags().StringVarP(sender, "sender", "s", "", "acting member id")
}

// postCommand wraps cmd in an envelope, posts it to the running service and
// prints whatever comes back.
func postCommand(url, sender string, tp command.CommandType, cmd any) {
	bc := command.Command{
		Version: command.CommandVersion1,
		Type:    tp,
		Sender:  sender,
		Cmd:     cmd,
	}
	dat, err := command.MarshalCommand(&bc)
	if err != nil {
		fmt.Printf("marshal command err:%v\n", err)
		return
	}
	res, err := http.Post(url+"/command", "application/json", bytes.NewReader(dat))
	if err != nil {
		fmt.Printf("post command err:%v\n", err)
		return
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Printf("read response err:%v\n", err)
		return
	}
	fmt.Printf("%v %v\n", res.Status, string(body))
}

func postQuery(url, path string, req any) {
	dat, err := json.Marshal(req)
	if err != nil {
		fmt.Printf("marshal request err:%v\n", err)
		return
	}
	res, err := http.Post(url+path, "application/json", bytes.NewReader(dat))
	if err != nil {
		fmt.Printf("post query err:%v\n", err)
		return
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Printf("read response err:%v\n", err)
		return
	}
	fmt.Printf("%v\n", string(body))
}
