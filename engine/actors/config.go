package actors

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"nostrprofiles/engine/library"
)

// ProfileKind is the nostr kind whose content is a canonically encoded profile entry.
const ProfileKind int = 641900

// DeletionKind is the NIP-09 deletion request, used to tombstone a profile event.
const DeletionKind int = 5

const DefaultNicknameSearchMinLength = 3

// InitConfig sets up our Viper config object
func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
	config.SetDefault("rootDir", homeDir+"/nostrprofiles/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		library.LogCLI(err.Error(), 4)
	}
	setDefaults(config)
	library.SetLogLevel(config.GetInt("logLevel"))
	// Create our working directory and config file if not exist
	initRootDir(config)
	touch(config.GetString("rootDir") + "config.yaml")
	err = config.WriteConfig()
	if err != nil {
		library.LogCLI(err.Error(), 1)
	}
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("flatFileDir", "data/")
	config.SetDefault("logLevel", 4)
	config.SetDefault("nicknameSearchMinLength", DefaultNicknameSearchMinLength)
	config.SetDefault("relaysMust", []string{"wss://nostr.688.org"})
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.MkdirAll(conf.GetString("rootDir"), 0755)
		if err != nil {
			library.LogCLI(err, 0)
		}
	}
}

func touch(name string) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		library.LogCLI(err, 1)
		return
	}
	f, err := os.OpenFile(name, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		library.LogCLI(err, 1)
		return
	}
	f.Close()
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}

// NicknameSearchMinLength is the shortest prefix accepted by nickname search.
func NicknameSearchMinLength() int {
	if conf == nil {
		return DefaultNicknameSearchMinLength
	}
	if n := conf.GetInt("nicknameSearchMinLength"); n > 0 {
		return n
	}
	return DefaultNicknameSearchMinLength
}
