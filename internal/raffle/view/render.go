package view

import (
	"fmt"
	"io"
)

const unsupportedMessage = "Please connect to a supported chain"

// Render writes the text view. Without a Raffle on the mounted chain only the
// unsupported-chain message is written.
func (v *View) Render(w io.Writer) error {
	snapshot := v.Snapshot()
	if !snapshot.Supported {
		_, err := fmt.Fprintln(w, unsupportedMessage)
		return err
	}

	fee, err := FormatEther(snapshot.State.EntranceFeeWei)
	if err != nil {
		fee = snapshot.State.EntranceFeeWei + " wei"
	} else {
		fee += " ETH"
	}

	action := "Enter Raffle"
	if snapshot.Busy {
		action = "Entering..."
	}

	_, err = fmt.Fprintf(w,
		"Raffle %s on chain %d [%s]\n"+
			"Entrance Fee: %s\n"+
			"The current number of players is: %s\n"+
			"The remaining time is: %s\n"+
			"The most previous winner was: %s\n",
		snapshot.Address, snapshot.ChainID, action,
		fee,
		snapshot.State.PlayerCount,
		snapshot.State.RemainingIntervalSeconds,
		snapshot.State.MostRecentWinner,
	)
	return err
}
