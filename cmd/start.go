package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/masqdata/masq/repl"
	"github.com/masqdata/masq/server"
	"github.com/masqdata/masq/session"
	"github.com/masqdata/masq/store"
)

var (
	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the Masq dataset server",
		RunE:  startRun,
	}

	storeTyp = "btree"
	dataDir  = "testdata"

	sshAddress     = "localhost:8241"
	authorizedKeys = ""
	hostKeys       = []string{"id_rsa"}

	stmtArgs = []string{}
)

func initServerFlags(fs *pflag.FlagSet) {
	fs.StringVar(&storeTyp, "store", storeTyp,
		"dataset store to use: btree, bbolt, badger, or pebble")
	cfgVars["store"] = fs.Lookup("store")

	fs.StringVar(&dataDir, "data", dataDir, "`directory` containing stored datasets")
	cfgVars["data"] = fs.Lookup("data")

	fs.StringSliceVar(&stmtArgs, "stmt", stmtArgs, "`statement` to run; multiple allowed")
}

func init() {
	fs := startCmd.Flags()
	initServerFlags(fs)

	fs.StringVar(&sshAddress, "ssh-port", sshAddress, "`port` used to serve SSH")
	cfgVars["ssh-port"] = fs.Lookup("ssh-port")

	fs.StringVar(&authorizedKeys, "ssh-authorized-keys", authorizedKeys,
		"`file` containing authorized ssh keys")
	cfgVars["ssh-authorized-keys"] = fs.Lookup("ssh-authorized-keys")

	fs.StringSliceVar(&hostKeys, "ssh-host-key", hostKeys,
		"`file` containing a ssh host key; multiple allowed")
	cfgVars["ssh-host-keys"] = fs.Lookup("ssh-host-key")

	cfgVars["accounts"] = nil

	masqCmd.AddCommand(startCmd)
}

func newServer(args []string) (*server.Server, error) {
	st, err := store.OpenStore(storeTyp, dataDir, log.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("masq: %s", err)
	}

	svr := &server.Server{
		Store: st,
		Flags: flgs,
		Handler: func(ses *session.Session, rr io.RuneReader, w io.Writer) {
			repl.Handler(rr, w)(ses)
		},
	}

	for idx, arg := range stmtArgs {
		svr.HandleSession(repl.Handler(strings.NewReader(arg+"\n"), os.Stdout), "startup",
			"stmt-arg", strconv.Itoa(idx))
	}

	for idx := 0; idx < len(args); idx++ {
		f, err := os.Open(args[idx])
		if err != nil {
			return nil, fmt.Errorf("masq: statement file: %s", err)
		}
		svr.HandleSession(repl.Handler(bufio.NewReader(f), os.Stderr), "startup", "stmt-file",
			args[idx])
		f.Close()
	}

	return svr, nil
}

func userAccounts() map[string]string {
	val := cfg["accounts"]
	if val == nil {
		return nil
	}
	slice, ok := val.([]interface{})
	if !ok {
		return nil
	}

	userPasswords := map[string]string{}
	for _, obj := range slice {
		account, ok := obj.(map[string]interface{})
		if !ok {
			return nil
		}
		user, ok := account["user"].(string)
		if !ok {
			return nil
		}
		password, ok := account["password"].(string)
		if !ok {
			return nil
		}
		userPasswords[user] = password
	}

	return userPasswords
}

func startRun(cmd *cobra.Command, args []string) error {
	svr, err := newServer(args)
	if err != nil {
		return err
	}

	userPasswords := userAccounts()

	sshCfg := server.SSHConfig{
		Address: sshAddress,
	}

	for _, hostKey := range hostKeys {
		keyBytes, err := ioutil.ReadFile(hostKey)
		if err != nil {
			return fmt.Errorf("masq: host keys: %s", err)
		}
		sshCfg.HostKeysBytes = append(sshCfg.HostKeysBytes, keyBytes)
	}

	if authorizedKeys != "" {
		sshCfg.AuthorizedBytes, err = ioutil.ReadFile(authorizedKeys)
		if err != nil {
			return fmt.Errorf("masq: authorized keys: %s", err)
		}
	}

	if len(userPasswords) > 0 {
		sshCfg.CheckPassword = func(user, password string) error {
			pw, ok := userPasswords[user]
			if !ok {
				return fmt.Errorf("user %s not found", user)
			}
			if password != pw {
				return fmt.Errorf("bad password for user %s", user)
			}
			return nil
		}
	}

	go func() {
		fmt.Fprintf(os.Stderr, "masq: %s\n", svr.ListenAndServeSSH(sshCfg))
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	fmt.Println("masq: waiting for ^C to shutdown")
	<-ch
	go func() {
		<-ch
		os.Exit(0)
	}()

	fmt.Println("masq: shutting down")
	svr.Shutdown(context.Background())

	return nil
}
