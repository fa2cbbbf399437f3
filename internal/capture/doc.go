// Package capture turns capture files into bare 802.11 frame buffers.
//
// It owns everything the decoder treats as an external collaborator: pcap and
// pcapng reading, radiotap stripping and making sure each buffer ends with a
// 4-byte integrity field.
package capture
